package main

import "github.com/SscSPs/bookkeeping_ledger/internal/commands"

func main() {
	commands.Execute()
}
