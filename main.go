package main

import "github.com/frahmantamala/finance-chatbot/cmd"

func main() {
	cmd.Execute()
}
