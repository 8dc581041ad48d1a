package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
)

func TestBanner(t *testing.T) {
	t.Run("Should dismiss after delay", func(t *testing.T) {
		b := notify.NewBanner(notify.WithDismissAfter(20 * time.Millisecond))

		b.Show("Purchase created for Flour")
		assert.Equal(t, "Purchase created for Flour", b.Message())

		assert.Eventually(t, func() bool { return b.Message() == "" }, time.Second, 5*time.Millisecond)
	})

	t.Run("Should restart delay on new message", func(t *testing.T) {
		b := notify.NewBanner(notify.WithDismissAfter(60 * time.Millisecond))

		b.Show("first")
		time.Sleep(40 * time.Millisecond)
		b.Show("second")
		time.Sleep(40 * time.Millisecond)

		assert.Equal(t, "second", b.Message())
		assert.Eventually(t, func() bool { return b.Message() == "" }, time.Second, 5*time.Millisecond)
	})

	t.Run("Should dismiss immediately", func(t *testing.T) {
		var (
			mu      sync.Mutex
			changes []string
		)
		b := notify.NewBanner(notify.WithOnChange(func(m string) {
			mu.Lock()
			defer mu.Unlock()
			changes = append(changes, m)
		}))

		b.Show("Order created for Flour")
		b.Dismiss()
		b.Dismiss()

		assert.Empty(t, b.Message())
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"Order created for Flour", ""}, changes)
	})

	t.Run("Should cancel pending clear on close", func(t *testing.T) {
		b := notify.NewBanner(notify.WithDismissAfter(10 * time.Millisecond))

		b.Show("kept")
		b.Close()
		time.Sleep(40 * time.Millisecond)

		assert.Equal(t, "kept", b.Message())

		b.Show("ignored")
		assert.Equal(t, "kept", b.Message())
	})

	t.Run("Should default to four seconds", func(t *testing.T) {
		assert.Equal(t, 4*time.Second, notify.DefaultDismissAfter)
	})
}
