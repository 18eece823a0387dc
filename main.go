package main

import "github.com/huanfeng/connhub-cli/cmd"

func main() {
	cmd.Execute()
}
