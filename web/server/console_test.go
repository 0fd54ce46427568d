package server

import (
	"fmt"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestConsoleRecordsLines(t *testing.T) {
	console := NewConsole(10)
	fmt.Fprintf(console, "first line\n")
	fmt.Fprintf(console, "second line\nthird line\n")

	messages := console.Messages()
	test.That(t, len(messages), test.ShouldEqual, 3)
	test.That(t, messages[0].Message, test.ShouldEqual, "first line")
	test.That(t, messages[2].Message, test.ShouldEqual, "third line")
	test.That(t, time.Since(messages[0].Timestamp), test.ShouldBeLessThan, time.Second)
}

func TestConsoleHoldsPartialLines(t *testing.T) {
	console := NewConsole(10)
	fmt.Fprint(console, "rendering ")
	test.That(t, console.Messages(), test.ShouldBeEmpty)

	fmt.Fprint(console, "row 3\n")
	messages := console.Messages()
	test.That(t, len(messages), test.ShouldEqual, 1)
	test.That(t, messages[0].Message, test.ShouldEqual, "rendering row 3")
}

func TestConsoleSkipsBlankLines(t *testing.T) {
	console := NewConsole(10)
	fmt.Fprint(console, "\n\nline\n\n")
	test.That(t, len(console.Messages()), test.ShouldEqual, 1)
}

func TestConsoleStripsColors(t *testing.T) {
	console := NewConsole(10)
	fmt.Fprint(console, "\x1b[32m[12:00:00.000] [server] [NOTICE]\x1b[0m ready\n")

	messages := console.Messages()
	test.That(t, len(messages), test.ShouldEqual, 1)
	test.That(t, messages[0].Message, test.ShouldEqual, "[12:00:00.000] [server] [NOTICE] ready")
}

func TestConsoleDropsOldest(t *testing.T) {
	console := NewConsole(3)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(console, "message %d\n", i)
	}

	messages := console.Messages()
	test.That(t, len(messages), test.ShouldEqual, 3)
	for i, msg := range messages {
		test.That(t, msg.Message, test.ShouldEqual, fmt.Sprintf("message %d", i+2))
	}
}

func TestConsoleConcurrentWrites(t *testing.T) {
	console := NewConsole(1000)
	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 50; i++ {
				fmt.Fprintf(console, "worker %d message %d\n", w, i)
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}
	test.That(t, len(console.Messages()), test.ShouldEqual, 200)
}
