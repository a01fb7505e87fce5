package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/emberlord/internal/emberlord/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := emberlord(); err != nil {
		logrus.Fatal(err)
	}
}

func emberlord() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
