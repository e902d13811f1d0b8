package main

import (
	"fmt"
	"os"

	"github.com/eiannone/keyboard"
)

// StartCancelListener watches the terminal keyboard and invokes cancel when
// Esc or q is pressed. The returned stop function releases the keyboard;
// call it once the render has finished.
func StartCancelListener(cancel func()) (stop func(), err error) {
	if err := keyboard.Open(); err != nil {
		return nil, fmt.Errorf("cannot open keyboard: %w", err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}

			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}

			switch {
			case key == keyboard.KeyEsc, char == 'q', char == 'Q':
				fmt.Fprintln(os.Stderr, "\nCancelling render...")
				cancel()
				return
			}
		}
	}()

	return func() {
		close(done)
		keyboard.Close()
	}, nil
}
