package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/kanak0604/market-campaigns/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `id, name, start_date, end_date, status,
	COALESCE(agency, ''), COALESCE(buyer, ''), COALESCE(brand, ''),
	total_leads, open_rate, conversion_rate, click_through_rate`

func (r *CampaignRepository) FindByID(ctx context.Context, id int) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Status,
		&c.Agency, &c.Buyer, &c.Brand,
		&c.TotalLeads, &c.OpenRate, &c.ConversionRate, &c.ClickThroughRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) List(ctx context.Context, filter entity.CampaignFilter) ([]entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	var clauses []string
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, "$"+strconv.Itoa(len(args))))
	}

	if filter.Agency != "" {
		add("agency = %s", filter.Agency)
	}
	if filter.Buyer != "" {
		add("buyer = %s", filter.Buyer)
	}
	if filter.Brand != "" {
		add("brand = %s", filter.Brand)
	}
	if filter.Name != "" {
		add("name ILIKE '%%' || %s || '%%'", filter.Name)
	}
	if filter.Status != "" {
		add("status = %s", filter.Status)
	}
	if filter.StartDate != nil {
		add("start_date >= %s", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("end_date <= %s", *filter.EndDate)
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		err := rows.Scan(
			&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Status,
			&c.Agency, &c.Buyer, &c.Brand,
			&c.TotalLeads, &c.OpenRate, &c.ConversionRate, &c.ClickThroughRate,
		)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) Insert(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (name, start_date, end_date, status, agency, buyer, brand)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		campaign.Name, campaign.StartDate, campaign.EndDate, campaign.Status,
		nullString(campaign.Agency), nullString(campaign.Buyer), nullString(campaign.Brand),
	).Scan(&campaign.ID)
}

// Update mexe só nos campos editáveis. As quatro métricas derivadas ficam
// de fora de propósito: só o recompute escreve nelas.
func (r *CampaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $2, start_date = $3, end_date = $4, status = $5,
		    agency = $6, buyer = $7, brand = $8
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		campaign.ID, campaign.Name, campaign.StartDate, campaign.EndDate,
		campaign.Status, nullString(campaign.Agency), nullString(campaign.Buyer),
		nullString(campaign.Brand),
	)
	return err
}

func (r *CampaignRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

func (r *CampaignRepository) UpdateMetrics(ctx context.Context, id int, m entity.CampaignMetrics) error {
	query := `
		UPDATE campaigns
		SET total_leads = $2, open_rate = $3, conversion_rate = $4, click_through_rate = $5
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		id, m.TotalLeads, m.OpenRate, m.ConversionRate, m.ClickThroughRate,
	)
	return err
}

func (r *CampaignRepository) FilterValues(ctx context.Context) (*entity.CampaignFilterValues, error) {
	values := &entity.CampaignFilterValues{
		Agencies: []string{},
		Buyers:   []string{},
		Brands:   []string{},
	}

	for _, q := range []struct {
		column string
		dest   *[]string
	}{
		{"agency", &values.Agencies},
		{"buyer", &values.Buyers},
		{"brand", &values.Brands},
	} {
		query := fmt.Sprintf(
			`SELECT DISTINCT %s FROM campaigns WHERE %s IS NOT NULL ORDER BY %s`,
			q.column, q.column, q.column,
		)
		rows, err := r.DB.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, err
			}
			*q.dest = append(*q.dest, v)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return values, nil
}

// Averages agrega as métricas já gravadas (não recalcula das populações).
func (r *CampaignRepository) Averages(ctx context.Context) (*entity.CampaignAverages, error) {
	query := `
		SELECT COALESCE(AVG(open_rate), 0),
		       COALESCE(AVG(conversion_rate), 0),
		       COALESCE(AVG(click_through_rate), 0),
		       COALESCE(SUM(total_leads), 0),
		       COUNT(*)
		FROM campaigns
	`
	var avg entity.CampaignAverages
	var count int
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&avg.AvgOpenRate, &avg.AvgConversionRate, &avg.AvgClickThroughRate,
		&avg.TotalLeads, &count,
	)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	avg.AvgOpenRate = entity.Round2(avg.AvgOpenRate)
	avg.AvgConversionRate = entity.Round2(avg.AvgConversionRate)
	avg.AvgClickThroughRate = entity.Round2(avg.AvgClickThroughRate)
	return &avg, nil
}
