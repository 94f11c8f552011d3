package main

import "github.com/hmans/todos/cmd"

func main() {
	cmd.Execute()
}
