package main

import "github.com/busebalkan99/design-checklist-vercel/cmd"

func main() {
	cmd.Execute()
}
