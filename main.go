package main

import "github.com/shouni/go-article-exact/cmd"

func main() {
	cmd.Execute()
}
