package text_test

import (
	"context"
	"fmt"

	"github.com/walteh/emojifix/pkg/text"
)

func ExampleCorrector_Correct() {
	corrector := text.NewCorrector()

	content := `<a class="whatsapp-floating" href="https://wa.me/34600000000-hola">chat</a>`

	result, err := corrector.Correct(context.Background(), content)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Insertions: %d\n", result.InsertionCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Modified: <a class="whatsapp-floating" href="https://wa.me/34600000000💬-hola">chat</a>
	// Insertions: 1
	// Was Modified: true
}
