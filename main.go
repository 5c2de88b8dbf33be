package main

import "github.com/theirongolddev/ccwidget/cmd"

func main() {
	cmd.Execute()
}
