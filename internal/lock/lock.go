package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// LockDirName 用户目录下存放锁文件的目录
	LockDirName = "locks"
	// StaleLockTimeout 超过该时长的锁视为过期
	StaleLockTimeout = 5 * time.Minute
)

// ErrLocked 同一项目上已有另一个 featgen 进程在运行
var ErrLocked = errors.New("another featgen run holds the project lock")

// writePID 把持有者 PID 写入锁文件，测试中可替换
var writePID = func(f *os.File, pid int) error {
	_, err := f.WriteString(strconv.Itoa(pid))
	return err
}

// Lock 基于文件的项目锁，防止两个进程同时改写同一个 Laravel 项目
type Lock struct {
	lockPath string
	acquired bool
}

// New 在 dir 下创建名为 name 的锁
func New(dir, name string) *Lock {
	return &Lock{lockPath: filepath.Join(dir, name)}
}

// ForProject 返回项目根目录对应的锁，锁文件放在 ~/.featgen/locks 下，不写入项目
func ForProject(root string) (*Lock, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("获取用户主目录失败: %w", err)
	}

	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	name := hex.EncodeToString(sum[:8]) + ".lock"
	return New(filepath.Join(home, ".featgen", LockDirName), name), nil
}

// Path 锁文件路径
func (l *Lock) Path() string {
	return l.lockPath
}

// TryAcquire 尝试获取锁；锁被其他进程持有时返回 false
func (l *Lock) TryAcquire() (bool, error) {
	if info, err := os.Stat(l.lockPath); err == nil {
		if time.Since(info.ModTime()) <= StaleLockTimeout {
			return false, nil
		}
		_ = os.Remove(l.lockPath)
	}

	if err := os.MkdirAll(filepath.Dir(l.lockPath), 0755); err != nil {
		return false, fmt.Errorf("创建锁目录失败: %w", err)
	}

	f, err := os.OpenFile(l.lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("创建锁文件失败: %w", err)
	}

	writeErr := writePID(f, os.Getpid())
	closeErr := f.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		// 写入失败时不留下空锁
		_ = os.Remove(l.lockPath)
		return false, fmt.Errorf("写入锁文件失败: %w", writeErr)
	}

	l.acquired = true
	return true, nil
}

// Acquire 获取锁，失败时返回带持有者 PID 的 ErrLocked
func (l *Lock) Acquire() error {
	ok, err := l.TryAcquire()
	if err != nil {
		return err
	}
	if !ok {
		if pid, err := l.GetPID(); err == nil {
			return fmt.Errorf("%w (pid %d, %s)", ErrLocked, pid, l.lockPath)
		}
		return fmt.Errorf("%w (%s)", ErrLocked, l.lockPath)
	}
	return nil
}

// Release 释放锁
func (l *Lock) Release() error {
	if !l.acquired {
		return nil
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除锁文件失败: %w", err)
	}

	l.acquired = false
	return nil
}

// GetPID 读取锁文件中的 PID
func (l *Lock) GetPID() (int, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in lock file: %w", err)
	}

	return pid, nil
}
