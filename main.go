package main

import "github.com/groupkv/gkv/cmd"

func main() {
	cmd.Execute()
}
