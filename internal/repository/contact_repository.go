package repository

import (
	"database/sql"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
)

type ContactRepositoryInterface interface {
	GetByID(id int) (*model.Contact, error)
	GetEmail(contactID int) (string, bool, error)
	ListAll() ([]model.Contact, error)
	Create(c *model.Contact) error
	Update(c *model.Contact) error
	Delete(id int) error
	EmailExists(email string, excludeID int) (bool, error)
}

type ContactRepository struct {
	DB *sql.DB
}

func (r *ContactRepository) GetByID(id int) (*model.Contact, error) {
	query := `
        SELECT id, email, first_name, last_name, status, created_at, updated_at
        FROM contacts WHERE id=$1
    `
	var c model.Contact
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewNotFound("contact", id)
		}
		return nil, appErrors.NewPersistence("get contact", err)
	}
	return &c, nil
}

// GetEmail resolves a contact id to its current email address. The second
// return value reports whether the contact exists.
func (r *ContactRepository) GetEmail(contactID int) (string, bool, error) {
	var email string
	err := r.DB.QueryRow(`SELECT email FROM contacts WHERE id=$1`, contactID).Scan(&email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return email, true, nil
}

func (r *ContactRepository) ListAll() ([]model.Contact, error) {
	query := `
        SELECT id, email, first_name, last_name, status, created_at, updated_at
        FROM contacts ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, appErrors.NewPersistence("list contacts", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, appErrors.NewPersistence("scan contact", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("list contacts", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Create(c *model.Contact) error {
	exists, err := r.EmailExists(c.Email, 0)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.NewValidation("a contact with email %s already exists", c.Email)
	}

	if c.Status == "" {
		c.Status = "subscribed"
	}
	query := `
        INSERT INTO contacts (email, first_name, last_name, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err = r.DB.QueryRow(query, c.Email, c.FirstName, c.LastName, c.Status).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return appErrors.NewPersistence("insert contact", err)
	}
	return nil
}

func (r *ContactRepository) Update(c *model.Contact) error {
	exists, err := r.EmailExists(c.Email, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.NewValidation("a contact with email %s already exists", c.Email)
	}

	query := `
        UPDATE contacts
        SET email=$1, first_name=$2, last_name=$3, status=$4, updated_at=NOW()
        WHERE id=$5
    `
	res, err := r.DB.Exec(query, c.Email, c.FirstName, c.LastName, c.Status, c.ID)
	if err != nil {
		return appErrors.NewPersistence("update contact", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return appErrors.NewPersistence("update contact", err)
	}
	if affected == 0 {
		return appErrors.NewNotFound("contact", c.ID)
	}
	return nil
}

func (r *ContactRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return appErrors.NewPersistence("delete contact", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return appErrors.NewPersistence("delete contact", err)
	}
	if affected == 0 {
		return appErrors.NewNotFound("contact", id)
	}
	return nil
}

// EmailExists reports whether another contact already uses the email.
// excludeID lets updates skip the row being edited.
func (r *ContactRepository) EmailExists(email string, excludeID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM contacts WHERE email=$1 AND id != $2`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, appErrors.NewPersistence("check contact email", err)
	}
	return count > 0, nil
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
var _ ContactEmailLookup = (*ContactRepository)(nil)
