// Package knowledge maps recognized topics to canned response sets,
// enriched with live data from the scheduling backend. Backend failures
// never surface: hard-coded defaults keep the responder from failing
// closed.
package knowledge

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/backend"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

// Fallback values used whenever the backend is unreachable.
const (
	DefaultPhone   = "(555) 123-4567"
	DefaultEmail   = "info@despacholegal.com"
	DefaultAddress = "Av. Principal 123, Madrid"
)

// Contact is the firm's contact information.
type Contact struct {
	Phone   string
	Email   string
	Address string
}

// Fees summarizes the firm's fee statistics.
type Fees struct {
	Average        float64
	Range          string
	InitialConsult string
}

// DefaultFees is the fallback fee summary.
var DefaultFees = Fees{
	Average:        150.0,
	Range:          "€50.00 - €300.00",
	InitialConsult: "Gratuita",
}

// Enrichment bundles everything fetched from the backend for one reply.
type Enrichment struct {
	Contact  Contact
	Services []model.PracticeArea
	Fees     Fees
}

type topic struct {
	key       string
	patterns  []string
	responses func(e Enrichment) []string
}

// Responder selects canned replies by topic-pattern matching.
type Responder struct {
	client *backend.Client
	random bool
	logger *logger.Logger
	topics []topic
}

// New creates a responder. With random=false (the default) the first
// response of the matched topic is always used, keeping replies
// reproducible.
func New(client *backend.Client, random bool, log *logger.Logger) *Responder {
	return &Responder{
		client: client,
		random: random,
		logger: log.WithComponent("knowledge"),
		topics: topicTable(),
	}
}

// Respond matches text against the topic table; the first topic with any
// pattern occurring as a substring wins. Returns false when no topic
// matches.
func (r *Responder) Respond(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, t := range r.topics {
		for _, p := range t.patterns {
			if strings.Contains(lower, p) {
				responses := t.responses(r.Enrichment(ctx))
				if len(responses) == 0 {
					return "", false
				}
				if r.random {
					return responses[rand.Intn(len(responses))], true
				}
				return responses[0], true
			}
		}
	}
	return "", false
}

// Enrichment fetches contact, services and fee data, substituting the
// defaults on any error.
func (r *Responder) Enrichment(ctx context.Context) Enrichment {
	return Enrichment{
		Contact:  r.ContactInfo(ctx),
		Services: r.ServicesOffered(ctx),
		Fees:     r.FeeInfo(ctx),
	}
}

// ContactInfo returns the firm's contact details, defaulting any
// parameter the backend does not provide.
func (r *Responder) ContactInfo(ctx context.Context) Contact {
	contact := Contact{Phone: DefaultPhone, Email: DefaultEmail, Address: DefaultAddress}

	params, err := r.client.ContactParams(ctx)
	if err != nil {
		r.logger.Debug("contact enrichment unavailable", zap.Error(err))
		return contact
	}
	if v := params["CONTACT_PHONE"]; v != "" {
		contact.Phone = v
	}
	if v := params["CONTACT_EMAIL"]; v != "" {
		contact.Email = v
	}
	if v := params["CONTACT_ADDRESS"]; v != "" {
		contact.Address = v
	}
	return contact
}

// ServicesOffered infers the set of practice areas from case titles.
// Empty results or errors yield the full fixed list.
func (r *Responder) ServicesOffered(ctx context.Context) []model.PracticeArea {
	cases, err := r.client.Cases(ctx)
	if err != nil {
		r.logger.Debug("services enrichment unavailable", zap.Error(err))
		return model.AllPracticeAreas
	}

	seen := make(map[model.PracticeArea]bool)
	var services []model.PracticeArea
	add := func(area model.PracticeArea) {
		if !seen[area] {
			seen[area] = true
			services = append(services, area)
		}
	}

	for _, c := range cases {
		title := strings.ToLower(c.Title)
		desc := strings.ToLower(c.Description)
		if strings.Contains(title, "civil") || strings.Contains(desc, "civil") {
			add(model.AreaCivil)
		}
		if strings.Contains(title, "mercantil") || strings.Contains(title, "comercial") {
			add(model.AreaMercantil)
		}
		if strings.Contains(title, "laboral") || strings.Contains(title, "trabajo") {
			add(model.AreaLaboral)
		}
		if strings.Contains(title, "familiar") || strings.Contains(title, "familia") {
			add(model.AreaFamiliar)
		}
		if strings.Contains(title, "penal") || strings.Contains(title, "criminal") {
			add(model.AreaPenal)
		}
		if strings.Contains(title, "administrativo") {
			add(model.AreaAdministrativo)
		}
	}

	if len(services) == 0 {
		return model.AllPracticeAreas
	}
	return services
}

// FeeInfo computes average/min/max fees from invoices, defaulting on
// error or when no invoices exist.
func (r *Responder) FeeInfo(ctx context.Context) Fees {
	invoices, err := r.client.Invoices(ctx)
	if err != nil || len(invoices) == 0 {
		if err != nil {
			r.logger.Debug("fee enrichment unavailable", zap.Error(err))
		}
		return DefaultFees
	}

	total := 0.0
	minTotal := invoices[0].Total
	maxTotal := invoices[0].Total
	for _, inv := range invoices {
		total += inv.Total
		if inv.Total < minTotal {
			minTotal = inv.Total
		}
		if inv.Total > maxTotal {
			maxTotal = inv.Total
		}
	}

	return Fees{
		Average:        total / float64(len(invoices)),
		Range:          fmt.Sprintf("€%.2f - €%.2f", minTotal, maxTotal),
		InitialConsult: "Gratuita",
	}
}

func areaNames(areas []model.PracticeArea) string {
	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
