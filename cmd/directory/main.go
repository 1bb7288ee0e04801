// directory はDART企業ディレクトリの構築・検索を行うCLIです。
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Get2Core/fs-project/cmd/directory/cmd"
)

func main() {
	_ = godotenv.Load()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
