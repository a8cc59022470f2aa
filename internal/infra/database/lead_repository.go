package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/kanak0604/market-campaigns/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) FindByID(ctx context.Context, id int) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone_number, campaign_assignment, segment,
		       has_opened_email, has_converted
		FROM leads
		WHERE id = $1
	`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, id))
}

// FindByEmail compara sempre em caixa baixa. O sistema antigo era
// case-sensitive no cadastro e case-insensitive na busca; aqui a política é
// uma só.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone_number, campaign_assignment, segment,
		       has_opened_email, has_converted
		FROM leads
		WHERE LOWER(email) = LOWER($1)
	`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(email)))
}

func (r *LeadRepository) scanLead(row *sql.Row) (*entity.Lead, error) {
	var lead entity.Lead
	var phone sql.NullString
	var campaign sql.NullInt64

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&phone,
		&campaign,
		&lead.Segment,
		&lead.HasOpenedEmail,
		&lead.HasConverted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lead.PhoneNumber = phone.String
	if campaign.Valid {
		id := int(campaign.Int64)
		lead.CampaignAssignment = &id
	}
	return &lead, nil
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.LeadWithCampaign, error) {
	query := `
		SELECT l.id, l.name, l.email, l.phone_number, l.campaign_assignment,
		       l.segment, l.has_opened_email, l.has_converted,
		       COALESCE(c.name, '')
		FROM leads l
		LEFT JOIN campaigns c ON c.id = l.campaign_assignment
		ORDER BY l.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.LeadWithCampaign
	for rows.Next() {
		var item entity.LeadWithCampaign
		var phone sql.NullString
		var campaign sql.NullInt64

		err := rows.Scan(
			&item.ID, &item.Name, &item.Email, &phone, &campaign,
			&item.Segment, &item.HasOpenedEmail, &item.HasConverted,
			&item.CampaignName,
		)
		if err != nil {
			return nil, err
		}

		item.PhoneNumber = phone.String
		if campaign.Valid {
			id := int(campaign.Int64)
			item.CampaignAssignment = &id
		}
		leads = append(leads, item)
	}
	return leads, rows.Err()
}

// SearchByKeys busca por email (minúsculo) OU id, com left join na campanha:
// lead de campanha pendurada sai com nome "—" e taxas zeradas.
func (r *LeadRepository) SearchByKeys(ctx context.Context, emails []string, ids []int) ([]entity.LeadSearchRow, error) {
	if len(emails) == 0 && len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT l.id, l.name, l.email, l.phone_number, l.segment,
		       COALESCE(c.name, '—'),
		       COALESCE(c.open_rate, 0),
		       COALESCE(c.click_through_rate, 0),
		       COALESCE(c.conversion_rate, 0),
		       l.has_opened_email, l.has_converted
		FROM leads l
		LEFT JOIN campaigns c ON c.id = l.campaign_assignment
		WHERE LOWER(l.email) = ANY($1) OR l.id = ANY($2)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(emails), pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.LeadSearchRow
	for rows.Next() {
		var row entity.LeadSearchRow
		var phone sql.NullString

		err := rows.Scan(
			&row.LeadID, &row.Name, &row.Email, &phone, &row.Segment,
			&row.CampaignName, &row.OpenRate, &row.Clicks, &row.Conversions,
			&row.HasOpenedEmail, &row.HasConverted,
		)
		if err != nil {
			return nil, err
		}

		row.PhoneNumber = phone.String
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *LeadRepository) CountByCampaign(ctx context.Context, campaignID int, pred entity.LeadPredicate) (int, error) {
	query := `SELECT COUNT(*) FROM leads WHERE campaign_assignment = $1`
	switch pred {
	case entity.OpenedEmailOnly:
		query += ` AND has_opened_email`
	case entity.ConvertedOnly:
		query += ` AND has_converted`
	}

	var count int
	if err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	var err error
	if lead.ID > 0 {
		// ID vindo do chamador (o cliente antigo mandava o próprio ID).
		query := `
			INSERT INTO leads (id, name, email, phone_number, campaign_assignment,
			                   segment, has_opened_email, has_converted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err = r.DB.ExecContext(ctx, query,
			lead.ID, lead.Name, lead.Email, nullString(lead.PhoneNumber),
			lead.CampaignAssignment, lead.Segment,
			lead.HasOpenedEmail, lead.HasConverted,
		)
	} else {
		query := `
			INSERT INTO leads (name, email, phone_number, campaign_assignment,
			                   segment, has_opened_email, has_converted)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err = r.DB.QueryRowContext(ctx, query,
			lead.Name, lead.Email, nullString(lead.PhoneNumber),
			lead.CampaignAssignment, lead.Segment,
			lead.HasOpenedEmail, lead.HasConverted,
		).Scan(&lead.ID)
	}

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}
	return nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, phone_number = $4, campaign_assignment = $5,
		    segment = $6, has_opened_email = $7, has_converted = $8
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, nullString(lead.PhoneNumber),
		lead.CampaignAssignment, lead.Segment,
		lead.HasOpenedEmail, lead.HasConverted,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return err
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

// mapUniqueViolation traduz 23505 do Postgres para o erro de domínio certo.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return entity.ErrEmailAlreadyExists
		}
		return entity.ErrLeadIDAlreadyExists
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
