package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gochinamed/models"
	ai "gochinamed/services/intelligence"
	"gochinamed/services/pricing"

	"go.uber.org/zap"
)

const (
	defaultAdvisorTimeout      = 20 * time.Second
	defaultCollaboratorTimeout = 5 * time.Second
	defaultUSDRate             = 7.2
)

// CurrencyConverter converts money between ISO currencies.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// Input is one plan-generation request.
type Input struct {
	Intent    models.BookingIntent
	Category  models.TreatmentCategory
	Fares     FareQuotes
	Budget    float64
	Travelers int
}

// Config tunes the generator.
type Config struct {
	Currency        string
	AdvisorTimeout  time.Duration
	FallbackUSDRate float64 // used when the converter fails
}

// Generator proposes three tiered plans. The advisor only frames them; prices
// come from the tier table and every candidate is normalized before it leaves.
type Generator struct {
	advisor   ai.TextGenerator
	converter CurrencyConverter
	cfg       Config
	logger    *zap.Logger
}

// NewGenerator builds a generator. advisor and converter may be nil.
func NewGenerator(advisor ai.TextGenerator, converter CurrencyConverter, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = pricing.DefaultCurrency
	}
	if cfg.AdvisorTimeout <= 0 {
		cfg.AdvisorTimeout = defaultAdvisorTimeout
	}
	if cfg.FallbackUSDRate <= 0 {
		cfg.FallbackUSDRate = defaultUSDRate
	}
	return &Generator{advisor: advisor, converter: converter, cfg: cfg, logger: logger}
}

// Generate returns exactly three normalized plans sorted by total amount.
func (g *Generator) Generate(ctx context.Context, in Input) []models.PlanOption {
	travelers := in.Travelers
	if travelers < 1 {
		travelers = in.Intent.TravelerCount()
	}
	hasSelection := in.Intent.HasMedicalSelection()

	drafts := g.deterministicDrafts(ctx, in, travelers)

	if g.advisor != nil {
		candidates, err := g.advise(ctx, in, drafts)
		if err != nil {
			g.logger.Warn("advisor plans rejected, using deterministic plans", zap.Error(err))
		} else {
			drafts = overlay(drafts, candidates)
		}
	}

	plans := make([]models.PlanOption, 0, len(drafts))
	for _, d := range drafts {
		plans = append(plans, pricing.Normalize(d, in.Category, hasSelection, travelers))
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].TotalAmount < plans[j].TotalAmount
	})
	return plans
}

func (g *Generator) deterministicDrafts(ctx context.Context, in Input, travelers int) []models.DraftPlan {
	rule := pricing.RuleFor(in.Category)
	intent := in.Intent
	same := sameCity(intent.OriginCity, intent.DestinationCity)
	destination := strings.TrimSpace(intent.DestinationCity)

	drafts := make([]models.DraftPlan, 0, len(tiers))
	for _, tier := range tiers {
		var flightFee, carFee float64
		if same {
			carFee = LocalGroundFee * tier.CarMultiplier
		} else {
			perTraveler := g.toSettlement(ctx, in.Fares.ForClass(tier.FlightClass).TypicalPrice)
			flightFee = perTraveler * float64(travelers)
		}

		medical := rule.Apply(rule.Base.Scale(tier.Multiplier))
		narrative := rule.DefaultNarrative
		if !intent.HasMedicalSelection() {
			narrative = "No hospital or doctor selected yet. Medical services can be added once one is chosen."
		}

		drafts = append(drafts, models.DraftPlan{
			Name:           fmt.Sprintf("%s Care Journey to %s", titleCase(tier.Name), destination),
			Tier:           tier.Name,
			HotelFee:       models.Float(tier.NightlyRate * StayNights * float64(travelers)),
			FlightFee:      models.Float(flightFee),
			CarFee:         models.Float(carFee),
			ReservationFee: models.Float(tier.ReservationFee),
			SurgeryFee:     models.Float(medical.Surgery),
			MedicineFee:    models.Float(medical.Medicine),
			NursingFee:     models.Float(medical.Nursing),
			NutritionFee:   models.Float(medical.Nutrition),
			Currency:       g.cfg.Currency,
			DurationDays:   models.Int(StayNights + 1),
			Nights:         models.Int(StayNights),
			HotelName:      fmt.Sprintf("%s %s", destination, tier.HotelSuffix),
			HotelStars:     models.Int(tier.HotelStars),
			FlightClass:    flightClass(tier, same),
			Highlights:     fallbackHighlights(tier, same),
			DoctorID:       intent.DoctorID,
			HospitalID:     intent.HospitalID,
			MedicalPlan:    narrative,
			Travelers:      models.Int(travelers),
			Source:         models.PlanSourceFallback,
		})
	}
	return drafts
}

func (g *Generator) toSettlement(ctx context.Context, usd float64) float64 {
	if usd <= 0 {
		return 0
	}
	if g.cfg.Currency == "USD" {
		return usd
	}
	if g.converter != nil {
		converted, err := g.converter.Convert(ctx, usd, "USD", g.cfg.Currency)
		if err == nil && converted > 0 {
			return converted
		}
		g.logger.Warn("currency conversion failed, using configured rate", zap.Error(err))
	}
	return pricing.Round2(usd * g.cfg.FallbackUSDRate)
}

func (g *Generator) advise(ctx context.Context, in Input, drafts []models.DraftPlan) ([]models.DraftPlan, error) {
	actx, cancel := context.WithTimeout(ctx, g.cfg.AdvisorTimeout)
	defer cancel()

	text, err := g.advisor.GenerateContent(actx, BuildPrompt(in, drafts))
	if err != nil {
		return nil, err
	}
	candidates, err := ParseCandidates(text)
	if err != nil {
		return nil, err
	}
	return matchTiers(drafts, candidates)
}

// matchTiers orders candidates like drafts using each candidate's tier field.
// Every tier must appear exactly once.
func matchTiers(drafts, candidates []models.DraftPlan) ([]models.DraftPlan, error) {
	byTier := make(map[string]models.DraftPlan, len(candidates))
	for i, c := range candidates {
		tier := strings.ToLower(strings.TrimSpace(c.Tier))
		if tier == "" {
			return nil, fmt.Errorf("%w: plan %d has no tier", ErrMalformedAdvice, i+1)
		}
		if _, dup := byTier[tier]; dup {
			return nil, fmt.Errorf("%w: tier %q appears twice", ErrMalformedAdvice, tier)
		}
		byTier[tier] = c
	}

	out := make([]models.DraftPlan, len(drafts))
	for i, d := range drafts {
		c, ok := byTier[d.Tier]
		if !ok {
			return nil, fmt.Errorf("%w: no plan for tier %q", ErrMalformedAdvice, d.Tier)
		}
		out[i] = c
	}
	return out, nil
}

// overlay keeps each tier's prices and takes the advisor's framing and any
// positive medical sub-fees. candidates[i] belongs to drafts[i]. The
// normalizer polices those fees afterwards.
func overlay(drafts, candidates []models.DraftPlan) []models.DraftPlan {
	out := make([]models.DraftPlan, len(drafts))
	for i, d := range drafts {
		c := candidates[i]
		d.Name = strings.TrimSpace(c.Name)
		if len(c.Highlights) > 0 {
			d.Highlights = c.Highlights
		}
		if s := strings.TrimSpace(c.HotelName); s != "" {
			d.HotelName = s
		}
		if s := strings.TrimSpace(c.MedicalPlan); s != "" {
			d.MedicalPlan = s
		}
		d.SurgeryFee = positiveOr(c.SurgeryFee, d.SurgeryFee)
		d.MedicineFee = positiveOr(c.MedicineFee, d.MedicineFee)
		d.NursingFee = positiveOr(c.NursingFee, d.NursingFee)
		d.NutritionFee = positiveOr(c.NutritionFee, d.NutritionFee)
		d.Source = models.PlanSourceAdvisor
		out[i] = d
	}
	return out
}

func positiveOr(v, def models.LooseFloat) models.LooseFloat {
	if v.Set && v.Value > 0 {
		return v
	}
	return def
}

func flightClass(tier Tier, same bool) string {
	if same {
		return ""
	}
	return tier.FlightClass
}

func fallbackHighlights(tier Tier, same bool) []string {
	h := []string{fmt.Sprintf("%d nights in a %d-star hotel", StayNights, tier.HotelStars)}
	if same {
		h = append(h, "Private car for local transfers")
	} else {
		h = append(h, fmt.Sprintf("Round-trip %s class flights", tier.FlightClass))
	}
	if tier.Name != models.TierBudget {
		h = append(h, "Dedicated medical interpreter")
	}
	return h
}

func sameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
