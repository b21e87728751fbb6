package main

import "github.com/OpenTraceLab/OpenTraceBoards/cmd/otb/cmd"

func main() {
	cmd.Execute()
}
