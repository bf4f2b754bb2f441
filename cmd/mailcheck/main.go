package main

import "github.com/postpros/mailcheck/cmd/mailcheck/cmd"

func main() {
	cmd.Execute()
}
