package main

import "github.com/MikeGii/vomm-sub000/cmd/vomm/root"

func main() {
	root.Execute()
}
