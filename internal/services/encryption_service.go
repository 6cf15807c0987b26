package services

import (
	"moodlog/internal/crypto"
	"moodlog/internal/models"
)

// EncryptionService wraps the cipher with domain-specific methods for the
// fields we keep encrypted at rest: user emails, the free-text parts of
// health entries, and journal entry content.
type EncryptionService struct {
	cipher *crypto.Cipher
}

func NewEncryptionService(encryptionKey, blindIndexKey []byte) (*EncryptionService, error) {
	cipher, err := crypto.NewCipher(encryptionKey, blindIndexKey)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: cipher}, nil
}

// EncryptUser encrypts the email and fills in its blind index for lookup.
func (s *EncryptionService) EncryptUser(user *models.User) error {
	encrypted, blindIndex, err := s.cipher.EncryptWithBlindIndex(user.Email)
	if err != nil {
		return err
	}
	user.Email = encrypted
	user.EmailBlindIndex = blindIndex
	return nil
}

func (s *EncryptionService) DecryptUser(user *models.User) error {
	decrypted, err := s.cipher.Decrypt(user.Email)
	if err != nil {
		return err
	}
	user.Email = decrypted
	return nil
}

// EmailBlindIndex computes the lookup index for an email without touching
// a User value; used by login.
func (s *EncryptionService) EmailBlindIndex(email string) string {
	return s.cipher.BlindIndex(email)
}

// EncryptHealthEntry encrypts the free-text fields; the numeric metrics
// stay in the clear because the dashboard aggregates over them in SQL.
func (s *EncryptionService) EncryptHealthEntry(entry *models.HealthEntry) error {
	if err := encryptPtr(s.cipher, entry.Symptoms); err != nil {
		return err
	}
	return encryptPtr(s.cipher, entry.Notes)
}

func (s *EncryptionService) DecryptHealthEntry(entry *models.HealthEntry) error {
	if err := decryptPtr(s.cipher, entry.Symptoms); err != nil {
		return err
	}
	return decryptPtr(s.cipher, entry.Notes)
}

func (s *EncryptionService) EncryptJournalEntry(entry *models.JournalEntry) error {
	encrypted, err := s.cipher.Encrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = encrypted
	return nil
}

func (s *EncryptionService) DecryptJournalEntry(entry *models.JournalEntry) error {
	decrypted, err := s.cipher.Decrypt(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = decrypted
	return nil
}

func encryptPtr(c *crypto.Cipher, field *string) error {
	if field == nil {
		return nil
	}
	encrypted, err := c.Encrypt(*field)
	if err != nil {
		return err
	}
	*field = encrypted
	return nil
}

func decryptPtr(c *crypto.Cipher, field *string) error {
	if field == nil {
		return nil
	}
	decrypted, err := c.Decrypt(*field)
	if err != nil {
		return err
	}
	*field = decrypted
	return nil
}
