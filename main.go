package main

import (
	"pesection/cmd"
)

func main() {
	cmd.Execute()
}
