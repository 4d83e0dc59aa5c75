package repository

import (
	"database/sql"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
)

type TemplateRepositoryInterface interface {
	GetByID(id int) (*model.EmailTemplate, error)
	ListAll() ([]model.EmailTemplate, error)
	Create(t *model.EmailTemplate) error
	Update(t *model.EmailTemplate) error
	Delete(id int) error
}

type TemplateRepository struct {
	DB *sql.DB
}

func (r *TemplateRepository) GetByID(id int) (*model.EmailTemplate, error) {
	query := `
        SELECT id, name, subject, body_html, created_at, updated_at
        FROM email_templates WHERE id=$1
    `
	var t model.EmailTemplate
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Name, &t.Subject, &t.BodyHTML, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewNotFound("template", id)
		}
		return nil, appErrors.NewPersistence("get template", err)
	}
	return &t, nil
}

func (r *TemplateRepository) ListAll() ([]model.EmailTemplate, error) {
	query := `
        SELECT id, name, subject, body_html, created_at, updated_at
        FROM email_templates ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, appErrors.NewPersistence("list templates", err)
	}
	defer rows.Close()

	templates := []model.EmailTemplate{}
	for rows.Next() {
		var t model.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.BodyHTML, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, appErrors.NewPersistence("scan template", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("list templates", err)
	}
	return templates, nil
}

func (r *TemplateRepository) Create(t *model.EmailTemplate) error {
	query := `
        INSERT INTO email_templates (name, subject, body_html)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.DB.QueryRow(query, t.Name, t.Subject, t.BodyHTML).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return appErrors.NewPersistence("insert template", err)
	}
	return nil
}

func (r *TemplateRepository) Update(t *model.EmailTemplate) error {
	query := `
        UPDATE email_templates
        SET name=$1, subject=$2, body_html=$3, updated_at=NOW()
        WHERE id=$4
    `
	res, err := r.DB.Exec(query, t.Name, t.Subject, t.BodyHTML, t.ID)
	if err != nil {
		return appErrors.NewPersistence("update template", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return appErrors.NewPersistence("update template", err)
	}
	if affected == 0 {
		return appErrors.NewNotFound("template", t.ID)
	}
	return nil
}

func (r *TemplateRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM email_templates WHERE id=$1`, id)
	if err != nil {
		return appErrors.NewPersistence("delete template", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return appErrors.NewPersistence("delete template", err)
	}
	if affected == 0 {
		return appErrors.NewNotFound("template", id)
	}
	return nil
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
