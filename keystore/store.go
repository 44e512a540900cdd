package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lumenlab.io/lumen/crypto"
	"lumenlab.io/lumen/keypair"
	"lumenlab.io/lumen/strkey"
)

// Store is a filesystem-backed seed store.
//
// Signer is used only to derive account addresses from stored seeds; the
// store itself performs no cryptographic math.
type Store struct {
	Directory string
	Signer    crypto.Signer

	// Passphrase seals seed files at rest when non-empty.
	Passphrase string
}

// Entry describes one stored name and its derived account labels.
type Entry struct {
	Name     string
	Accounts []string
}

// DefaultDirectory returns the per-user store location.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".lumen", "keys"), nil
}

// Open returns a Store rooted at directory, or the default location when
// directory is empty.
func Open(signer crypto.Signer, directory, passphrase string) (*Store, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Directory: directory, Signer: signer, Passphrase: passphrase}, nil
}

func (s *Store) rootSeedPath(name string) string {
	return filepath.Join(s.Directory, name, "root.seed")
}

func (s *Store) accountSeedPath(name, label string) string {
	return filepath.Join(s.Directory, name, "accounts", label+".seed")
}

// InitializeRoot stores seed under name and returns its account address.
func (s *Store) InitializeRoot(name string, seed []byte, overwrite bool) (address, path string, err error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	if err := crypto.CheckSize("seed", seed, crypto.PrivateKeySize); err != nil {
		return "", "", err
	}
	path = s.rootSeedPath(name)
	if err := s.saveSeed(path, seed, overwrite); err != nil {
		return "", "", err
	}
	address, err = s.addressOf(seed)
	if err != nil {
		return "", "", err
	}
	return address, path, nil
}

// DeriveAccount derives a labeled account seed from name's root seed, stores
// it, and returns its address.
func (s *Store) DeriveAccount(name, label string, overwrite bool) (address, path string, err error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	if err := CheckLabel(label); err != nil {
		return "", "", err
	}
	rootSeed, err := s.loadSeed(s.rootSeedPath(name))
	if err != nil {
		return "", "", err
	}
	accountSeed, err := DeriveAccountSeed(rootSeed, label)
	if err != nil {
		return "", "", err
	}
	path = s.accountSeedPath(name, label)
	if err := s.saveSeed(path, accountSeed, overwrite); err != nil {
		return "", "", err
	}
	address, err = s.addressOf(accountSeed)
	if err != nil {
		return "", "", err
	}
	return address, path, nil
}

// Export returns the address for a stored seed. An empty label exports the
// root entry.
func (s *Store) Export(name, label string) (string, error) {
	seed, err := s.lookupSeed(name, label)
	if err != nil {
		return "", err
	}
	return s.addressOf(seed)
}

// KeyPair loads a stored seed as a signing KeyPair. An empty label loads the
// root entry.
func (s *Store) KeyPair(name, label string) (*keypair.KeyPair, error) {
	seed, err := s.lookupSeed(name, label)
	if err != nil {
		return nil, err
	}
	return keypair.FromRawSeed(s.Signer, seed)
}

// List returns stored names and their derived account labels, sorted.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var result []Entry
	for _, name := range names {
		accountsDir := filepath.Join(s.Directory, name, "accounts")
		accountEntries, aerr := os.ReadDir(accountsDir)
		var accounts []string
		if aerr == nil {
			for _, accountEntry := range accountEntries {
				if accountEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(accountEntry.Name(), ".seed") {
					accounts = append(accounts, strings.TrimSuffix(accountEntry.Name(), ".seed"))
				}
			}
			sort.Strings(accounts)
		}
		result = append(result, Entry{Name: name, Accounts: accounts})
	}
	return result, nil
}

func (s *Store) lookupSeed(name, label string) ([]byte, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if label == "" {
		return s.loadSeed(s.rootSeedPath(name))
	}
	if err := CheckLabel(label); err != nil {
		return nil, err
	}
	return s.loadSeed(s.accountSeedPath(name, label))
}

func (s *Store) saveSeed(path string, seed []byte, overwrite bool) error {
	text, err := strkey.EncodeSeed(seed)
	if err != nil {
		return err
	}
	contents := []byte(text + "\n")
	if s.Passphrase != "" {
		contents, err = sealSeed([]byte(text), s.Passphrase)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(contents); err != nil {
		return err
	}
	return file.Close()
}

func (s *Store) loadSeed(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isSealed(data) {
		if s.Passphrase == "" {
			return nil, ErrPassphrase
		}
		data, err = openSealed(data, s.Passphrase)
		if err != nil {
			return nil, err
		}
	}
	return strkey.DecodeSeed(strings.TrimSpace(string(data)))
}

func (s *Store) addressOf(seed []byte) (string, error) {
	if s.Signer == nil {
		return "", errors.New("keystore: no signer configured")
	}
	kp, err := keypair.FromRawSeed(s.Signer, seed)
	if err != nil {
		return "", err
	}
	return kp.Address(), nil
}
