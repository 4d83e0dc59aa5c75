package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	// Campaign persistence
	Save(p SaveParams) (int, error)
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	ListRecipients(campaignID int) ([]model.CampaignRecipient, error)

	// Scheduler support
	FindDueCampaigns(now time.Time) ([]int, error)
	FinalizeCampaign(id int, now time.Time) (bool, error)
}

// SaveParams carries a fully validated campaign save. Timestamp rules
// (scheduled_at/sent_at exclusivity) have already been applied by the
// service layer; the repository's job is the atomic write.
type SaveParams struct {
	CampaignID  int // 0 means create
	Name        string
	Subject     string
	BodyHTML    string
	Status      model.CampaignStatus
	ScheduledAt *time.Time
	SentAt      *time.Time
	ContactIDs  []int
}

type CampaignRepository struct {
	DB           *sql.DB
	Materializer *RecipientMaterializer
}

// Save upserts the campaign row, replaces its recipient set and recomputes
// the aggregate counters, all inside one transaction. Either everything
// becomes visible or nothing does.
func (r *CampaignRepository) Save(p SaveParams) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, appErrors.NewPersistence("begin campaign save", err)
	}
	defer tx.Rollback()

	id := p.CampaignID
	if id == 0 {
		query := `
            INSERT INTO campaigns (name, subject, body_html, status, scheduled_at, sent_at, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, NOW())
            RETURNING id
        `
		err = tx.QueryRow(query, p.Name, p.Subject, p.BodyHTML, p.Status, p.ScheduledAt, p.SentAt).Scan(&id)
		if err != nil {
			return 0, appErrors.NewPersistence("insert campaign", err)
		}
	} else {
		query := `
            UPDATE campaigns
            SET name=$1, subject=$2, body_html=$3, status=$4, scheduled_at=$5, sent_at=$6
            WHERE id=$7
        `
		res, err := tx.Exec(query, p.Name, p.Subject, p.BodyHTML, p.Status, p.ScheduledAt, p.SentAt, id)
		if err != nil {
			return 0, appErrors.NewPersistence("update campaign", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, appErrors.NewPersistence("update campaign", err)
		}
		if affected == 0 {
			return 0, appErrors.NewNotFound("campaign", id)
		}

		// Recipient selection is replaced wholesale on every update.
		if _, err := tx.Exec(`DELETE FROM campaign_recipients WHERE campaign_id=$1`, id); err != nil {
			return 0, appErrors.NewPersistence("clear campaign recipients", err)
		}
	}

	inserted, err := r.Materializer.Materialize(tx, id, p.ContactIDs)
	if err != nil {
		return 0, err
	}

	successfullySent := 0
	if p.Status == model.StatusSent {
		successfullySent = inserted
	}
	query := `UPDATE campaigns SET total_recipients=$1, successfully_sent=$2 WHERE id=$3`
	if _, err := tx.Exec(query, inserted, successfullySent, id); err != nil {
		return 0, appErrors.NewPersistence("update campaign counters", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, appErrors.NewPersistence("commit campaign save", err)
	}
	return id, nil
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, subject, body_html, status, created_at, scheduled_at, sent_at,
               total_recipients, successfully_sent, opens_count, clicks_count, bounces_count
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Subject, &c.BodyHTML, &c.Status, &c.CreatedAt, &c.ScheduledAt, &c.SentAt,
		&c.TotalRecipients, &c.SuccessfullySent, &c.OpensCount, &c.ClicksCount, &c.BouncesCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewNotFound("campaign", id)
		}
		return nil, appErrors.NewPersistence("get campaign", err)
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
        SELECT id, name, subject, body_html, status, created_at, scheduled_at, sent_at,
               total_recipients, successfully_sent, opens_count, clicks_count, bounces_count
        FROM campaigns WHERE 1=1
    `
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, appErrors.NewPersistence("list campaigns", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Subject, &c.BodyHTML, &c.Status, &c.CreatedAt, &c.ScheduledAt, &c.SentAt,
			&c.TotalRecipients, &c.SuccessfullySent, &c.OpensCount, &c.ClicksCount, &c.BouncesCount,
		); err != nil {
			return nil, 0, appErrors.NewPersistence("scan campaign", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, appErrors.NewPersistence("list campaigns", err)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	countArgs := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, appErrors.NewPersistence("count campaigns", err)
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) ListRecipients(campaignID int) ([]model.CampaignRecipient, error) {
	query := `
        SELECT id, campaign_id, contact_id, email_address, status, created_at, processed_at
        FROM campaign_recipients
        WHERE campaign_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, appErrors.NewPersistence("list recipients", err)
	}
	defer rows.Close()

	recipients := []model.CampaignRecipient{}
	for rows.Next() {
		var rec model.CampaignRecipient
		if err := rows.Scan(
			&rec.ID, &rec.CampaignID, &rec.ContactID, &rec.EmailAddress,
			&rec.Status, &rec.CreatedAt, &rec.ProcessedAt,
		); err != nil {
			return nil, appErrors.NewPersistence("scan recipient", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("list recipients", err)
	}
	return recipients, nil
}

// FindDueCampaigns returns the ids of scheduled campaigns whose scheduled_at
// is at or before now. The comparison is inclusive.
func (r *CampaignRepository) FindDueCampaigns(now time.Time) ([]int, error) {
	query := `
        SELECT id FROM campaigns
        WHERE status='scheduled' AND scheduled_at <= $1
        ORDER BY scheduled_at
    `
	rows, err := r.DB.Query(query, now)
	if err != nil {
		return nil, appErrors.NewPersistence("find due campaigns", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, appErrors.NewPersistence("scan due campaign", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("find due campaigns", err)
	}
	return ids, nil
}

// FinalizeCampaign promotes one due campaign to sent inside its own
// transaction. The conditional WHERE status='scheduled' is the ownership
// check: zero rows affected means another run already finalized the campaign
// and this call commits as a no-op, returning false.
func (r *CampaignRepository) FinalizeCampaign(id int, now time.Time) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, appErrors.NewPersistence("begin finalize", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
        UPDATE campaigns
        SET status='sent', sent_at=$2, scheduled_at=NULL
        WHERE id=$1 AND status='scheduled'
    `, id, now)
	if err != nil {
		return false, appErrors.NewPersistence("promote campaign", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, appErrors.NewPersistence("promote campaign", err)
	}
	if affected == 0 {
		if err := tx.Commit(); err != nil {
			return false, appErrors.NewPersistence("commit no-op finalize", err)
		}
		return false, nil
	}

	// The simulation assumes 100% delivery of every materialised recipient.
	var total int
	if err := tx.QueryRow(`SELECT total_recipients FROM campaigns WHERE id=$1`, id).Scan(&total); err != nil {
		return false, appErrors.NewPersistence("read recipient total", err)
	}
	if _, err := tx.Exec(`UPDATE campaigns SET successfully_sent=$2 WHERE id=$1`, id, total); err != nil {
		return false, appErrors.NewPersistence("update successfully_sent", err)
	}

	if _, err := tx.Exec(`
        UPDATE campaign_recipients
        SET status='sim_sent', processed_at=$2
        WHERE campaign_id=$1 AND status='targeted'
    `, id, now); err != nil {
		return false, appErrors.NewPersistence("finalize recipients", err)
	}

	if err := tx.Commit(); err != nil {
		return false, appErrors.NewPersistence("commit finalize", err)
	}
	return true, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
