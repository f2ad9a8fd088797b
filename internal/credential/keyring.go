package credential

import (
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

const serviceName = "crisis-dispatch"

var (
	mu       sync.Mutex
	override keyring.Keyring
)

// UseKeyring replaces the system keyring with the given instance. Tests
// inject keyring.NewArrayKeyring(nil) here to avoid touching the OS store.
func UseKeyring(ring keyring.Keyring) {
	mu.Lock()
	defer mu.Unlock()
	override = ring
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	mu.Lock()
	if override != nil {
		ring := override
		mu.Unlock()
		return ring, nil
	}
	mu.Unlock()

	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/crisis-dispatch/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("crisis-dispatch-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
