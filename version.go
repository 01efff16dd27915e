package main

import (
	"fmt"

	"github.com/dataform/viewpatterns/internal/version"
)

// printVersion 输出注入的版本 + 提交信息。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}
