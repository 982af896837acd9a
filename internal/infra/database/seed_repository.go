package database

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

//go:embed schema.sql
var Schema string

// SeedRepository reads the bootstrap dataset. The store never writes back.
type SeedRepository struct {
	DB *sql.DB
}

func NewSeedRepository(db *sql.DB) *SeedRepository {
	return &SeedRepository{DB: db}
}

var _ crm.Source = (*SeedRepository)(nil)

type scanner interface {
	Scan(dest ...any) error
}

const (
	contactsQuery = `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(company, ''),
		       COALESCE(position, ''), COALESCE(source, ''),
		       COALESCE(array_to_json(tags), '[]')::text,
		       to_char(created_at, 'YYYY-MM-DD'),
		       COALESCE(to_char(last_contact, 'YYYY-MM-DD'), ''),
		       value::float8, status
		FROM crm_contacts
		ORDER BY position_idx`

	leadsQuery = `
		SELECT id, name, COALESCE(email, ''), COALESCE(company, ''),
		       value::float8, probability, stage, COALESCE(assigned_to, ''),
		       to_char(created_at, 'YYYY-MM-DD'),
		       COALESCE(to_char(expected_close, 'YYYY-MM-DD'), ''),
		       ai_score, COALESCE(array_to_json(notes), '[]')::text
		FROM crm_leads
		ORDER BY position_idx`

	insightsQuery = `
		SELECT id, type, title, description, confidence, priority,
		       to_char(created_at, 'YYYY-MM-DD')
		FROM crm_insights
		ORDER BY position_idx`
)

func (r *SeedRepository) Load(ctx context.Context) (crm.Dataset, error) {
	var data crm.Dataset
	var err error

	if data.Contacts, err = queryAll(ctx, r.DB, contactsQuery, scanContact); err != nil {
		return crm.Dataset{}, fmt.Errorf("carregando contatos: %w", err)
	}
	if data.Leads, err = queryAll(ctx, r.DB, leadsQuery, scanLead); err != nil {
		return crm.Dataset{}, fmt.Errorf("carregando leads: %w", err)
	}
	if data.Insights, err = queryAll(ctx, r.DB, insightsQuery, scanInsight); err != nil {
		return crm.Dataset{}, fmt.Errorf("carregando insights: %w", err)
	}
	return data, nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanContact(s scanner) (entity.Contact, error) {
	var c entity.Contact
	var tags string
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Position, &c.Source,
		&tags, &c.CreatedAt, &c.LastContact, &c.Value, &c.Status)
	if err != nil {
		return entity.Contact{}, err
	}
	if c.Tags, err = decodeList(tags); err != nil {
		return entity.Contact{}, fmt.Errorf("tags do contato %s: %w", c.ID, err)
	}
	return c, nil
}

func scanLead(s scanner) (entity.Lead, error) {
	var l entity.Lead
	var notes string
	err := s.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Value, &l.Probability, &l.Stage,
		&l.AssignedTo, &l.CreatedAt, &l.ExpectedClose, &l.AIScore, &notes)
	if err != nil {
		return entity.Lead{}, err
	}
	if l.Notes, err = decodeList(notes); err != nil {
		return entity.Lead{}, fmt.Errorf("notas do lead %s: %w", l.ID, err)
	}
	return l, nil
}

func scanInsight(s scanner) (entity.AIInsight, error) {
	var in entity.AIInsight
	err := s.Scan(&in.ID, &in.Type, &in.Title, &in.Description, &in.Confidence, &in.Priority, &in.CreatedAt)
	return in, err
}

// decodeList turns a JSON array of strings into a slice. Arrays never come
// back nil.
func decodeList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
