package main

import "github.com/danomnoms/server/cmd"

func main() {
	cmd.Execute()
}
