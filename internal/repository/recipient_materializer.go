package repository

import (
	"database/sql"
	"log"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
)

// ContactEmailLookup is the read-only contact collaborator the materializer
// resolves ids against.
type ContactEmailLookup interface {
	GetEmail(contactID int) (string, bool, error)
}

// Execer is the subset of *sql.Tx the materializer writes through. It runs
// only inside an enclosing campaign save transaction and never commits on
// its own.
type Execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// RecipientMaterializer snapshots contact emails into campaign_recipients
// rows. Contact ids that do not resolve are logged and skipped; a storage
// failure aborts the enclosing transaction.
type RecipientMaterializer struct {
	Contacts ContactEmailLookup
}

// Materialize inserts one targeted row per resolvable contact id and returns
// the number of rows actually inserted.
func (m *RecipientMaterializer) Materialize(tx Execer, campaignID int, contactIDs []int) (int, error) {
	inserted := 0
	for _, contactID := range contactIDs {
		email, found, err := m.Contacts.GetEmail(contactID)
		if err != nil {
			return 0, appErrors.NewPersistence("resolve contact email", err)
		}
		if !found {
			log.Printf("⚠️ contact %d not found, skipping recipient for campaign %d", contactID, campaignID)
			continue
		}

		_, err = tx.Exec(`
            INSERT INTO campaign_recipients (campaign_id, contact_id, email_address, status, created_at)
            VALUES ($1, $2, $3, 'targeted', NOW())
        `, campaignID, contactID, email)
		if err != nil {
			return 0, appErrors.NewPersistence("insert campaign recipient", err)
		}
		inserted++
	}
	return inserted, nil
}
