package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/givikap120/flowpp/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := flowpp(); err != nil {
		logrus.Fatal(err)
	}
}

func flowpp() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
