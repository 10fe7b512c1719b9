// Package repository implements credential persistence.
//
// The file implementation keeps the JSON layout of earlier releases: cards.json maps card
// identifiers to {name, registered_at} in registration order, and config.json holds
// {pin_enabled, pin_hash}. The SQL implementations store the same data in the cards and
// pin_credential tables and rewrite them inside a transaction on every save.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/storage"
)

const (
	cardsFile  = "cards.json"
	configFile = "config.json"
)

// FileCredentialRepository stores credentials as JSON documents in a directory.
type FileCredentialRepository struct {
	cards  *storage.Document
	config *storage.Document
}

// NewFileCredentialRepository creates a repository rooted at dir.
func NewFileCredentialRepository(dir string) *FileCredentialRepository {
	return &FileCredentialRepository{
		cards:  storage.NewDocument(dir, cardsFile),
		config: storage.NewDocument(dir, configFile),
	}
}

// LoadCards reads cards.json preserving the key order of the document.
func (f *FileCredentialRepository) LoadCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	var doc cardsDocument
	if _, err := f.cards.Read(&doc); err != nil {
		return nil, err
	}

	cards := make([]*credentialDomain.Card, 0, len(doc))
	for _, entry := range doc {
		// Unparseable timestamps from older files load as the zero time; the store replaces it.
		registeredAt, _ := storage.ParseTime(entry.RegisteredAt)
		cards = append(cards, &credentialDomain.Card{
			ID:           entry.id,
			Name:         entry.Name,
			RegisteredAt: registeredAt,
		})
	}
	return cards, nil
}

// SaveCards rewrites cards.json.
func (f *FileCredentialRepository) SaveCards(ctx context.Context, cards []*credentialDomain.Card) error {
	doc := make(cardsDocument, 0, len(cards))
	for _, card := range cards {
		doc = append(doc, cardEntry{
			id: card.ID,
			cardRecord: cardRecord{
				Name:         card.Name,
				RegisteredAt: storage.FormatTime(card.RegisteredAt),
			},
		})
	}
	return f.cards.Write(doc)
}

// LoadPin reads config.json.
func (f *FileCredentialRepository) LoadPin(ctx context.Context) (*credentialDomain.PinCredential, error) {
	var doc pinDocument
	found, err := f.config.Read(&doc)
	if err != nil {
		return nil, err
	}
	if !found || !doc.PinEnabled || doc.PinHash == nil {
		return credentialDomain.Disabled(), nil
	}
	return &credentialDomain.PinCredential{Enabled: true, Hash: *doc.PinHash}, nil
}

// SavePin rewrites config.json. A disabled credential is written with a null hash.
func (f *FileCredentialRepository) SavePin(ctx context.Context, pin *credentialDomain.PinCredential) error {
	doc := pinDocument{PinEnabled: pin.Enabled}
	if pin.Enabled {
		hash := pin.Hash
		doc.PinHash = &hash
	}
	return f.config.Write(&doc)
}

type pinDocument struct {
	PinEnabled bool    `json:"pin_enabled"`
	PinHash    *string `json:"pin_hash"`
}

type cardRecord struct {
	Name         string `json:"name"`
	RegisteredAt string `json:"registered_at"`
}

type cardEntry struct {
	id string
	cardRecord
}

// cardsDocument is a JSON object whose key order is significant.
type cardsDocument []cardEntry

func (d cardsDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.cardRecord)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *cardsDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("cards document must be a JSON object")
	}

	var entries cardsDocument
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var record cardRecord
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("card entry: %w", err)
		}

		// Duplicate keys keep the last value at the first position, as a map would.
		if _, dup := seen[id]; dup {
			for i := range entries {
				if entries[i].id == id {
					entries[i].cardRecord = record
				}
			}
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, cardEntry{id: id, cardRecord: record})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = entries
	return nil
}
