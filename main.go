package main

import "github.com/YangQing-Lin/featgen/cmd"

func main() {
	cmd.Execute()
}
