package market

import (
	"math"
	"sort"

	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
)

// RestaurantResult is one restaurant's outcome for one turn, aggregated
// across segments.
type RestaurantResult struct {
	RestaurantID    string
	Capacity        int64
	AllocatedDemand int64
	Served          int64
	LostCustomers   int64
	Utilization     float64
	Revenue         money.Money
	AverageTicket   money.Money
	Satisfaction    float64 // 0 means "no customers served this turn"
}

// Result is the full-turn allocator output.
type Result struct {
	TotalDemand   int64
	SegmentDemand map[string]int64
	PerRestaurant map[string]*RestaurantResult
}

const segmentBudgetTolerance = 1.15

// eligible reports whether a restaurant may serve a segment: it must be
// staffed and its median menu price must fall within the segment's budget
// tolerance.
func eligible(r *restaurant.Restaurant, seg Segment) (money.Money, bool) {
	if r.StaffingLevel == 0 {
		return money.Zero, false
	}
	price, hasMenu := r.MedianMenuPrice()
	if !hasMenu {
		return money.Zero, false
	}
	if price.GreaterThan(seg.Budget.Mul(decimalOf(segmentBudgetTolerance))) {
		return price, false
	}
	return price, true
}

// priceFactor is the price component of the attractiveness score.
func priceFactor(price, budget money.Money) float64 {
	p, b := price.Float64(), budget.Float64()
	if b <= 0 {
		return 0
	}
	upper := b * segmentBudgetTolerance
	switch {
	case p > upper:
		return 0
	case p <= b:
		return 1 + math.Min(0.30, (b-p)/b*0.40)
	default:
		// Linear drop from 1 (at budget) to 0.20 (at upper).
		frac := (p - b) / (upper - b)
		return 1 - frac*(1-0.20)
	}
}

// qualityFactor maps an overall quality score to the piecewise factor from
// the scoring design, then raises it to the quality-importance modifier.
func qualityFactor(qualityScore, qualityImportanceMult float64) float64 {
	var base float64
	switch {
	case qualityScore <= 1.5:
		base = 0.80
	case qualityScore <= 2.5:
		base = 1.00
	case qualityScore <= 3.5:
		base = 1.15
	case qualityScore <= 4.5:
		base = 1.30
	default:
		base = 1.50
	}
	if qualityImportanceMult <= 0 {
		return base
	}
	return math.Pow(base, qualityImportanceMult)
}

// competitionPenalty dampens score as more same-type restaurants compete
// for the same segment.
func competitionPenalty(nSameType int) float64 {
	return 1 / math.Sqrt(1+0.5*float64(nSameType-1))
}

type scoredCandidate struct {
	restaurant *restaurant.Restaurant
	price      money.Money
	score      float64
}

// score computes one restaurant's attractiveness score for one segment.
func scoreCandidate(r *restaurant.Restaurant, price money.Money, seg Segment, mods events.Modifiers, nSameType int) float64 {
	pf := priceFactor(price, seg.Budget)
	if pf == 0 {
		return 0
	}
	typeAffinity := seg.typeAffinity(string(r.Type))
	qf := qualityFactor(r.QualityScore(), mods.QualityImportance)
	reputationFactor := r.Reputation / 10
	penalty := competitionPenalty(nSameType)

	priceSensitivity := seg.PriceSensitivity * mods.PriceSensitivity
	return typeAffinity * math.Pow(pf, priceSensitivity) * qf * reputationFactor * penalty
}

// Allocate runs one turn of the market allocator for a fixed set of open
// restaurants, returning per-restaurant served customers and revenue.
func Allocate(scenario Scenario, restaurants []*restaurant.Restaurant, month int, mods events.Modifiers, stream *rng.Stream) Result {
	result := Result{
		SegmentDemand: make(map[string]int64),
		PerRestaurant: make(map[string]*RestaurantResult),
	}

	capacityRemaining := make(map[string]int64, len(restaurants))
	for _, r := range restaurants {
		capacity := r.Capacity()
		capacityRemaining[r.ID] = capacity
		result.PerRestaurant[r.ID] = &RestaurantResult{RestaurantID: r.ID, Capacity: capacity}
	}

	sameTypeCount := make(map[restaurant.Type]int)
	for _, r := range restaurants {
		if r.StaffingLevel > 0 {
			sameTypeCount[r.Type]++
		}
	}

	noise := stream.UniformInRange(-scenario.DemandNoise, scenario.DemandNoise)
	totalDemandBase := money.RoundToInt(decimalOf(scenario.BaseDemand * (1 + noise)))

	var weightedSeasonal float64
	for _, seg := range scenario.Segments {
		weightedSeasonal += seg.Share * seg.seasonalFactor(month)
	}
	if weightedSeasonal == 0 {
		weightedSeasonal = 1
	}

	totalDemand := money.RoundToInt(decimalOf(float64(totalDemandBase) * mods.Demand * weightedSeasonal))
	result.TotalDemand = totalDemand

	servedSoFar := make(map[string]int64, len(restaurants))
	revenueSoFar := make(map[string]money.Money, len(restaurants))

	for _, seg := range scenario.Segments {
		perSegmentMult := 1.0
		if m, ok := mods.PerSegment[seg.Name]; ok {
			perSegmentMult = m
		}
		segDemand := money.RoundToInt(decimalOf(float64(totalDemand) * seg.Share * perSegmentMult))
		result.SegmentDemand[seg.Name] = segDemand

		var candidates []scoredCandidate
		for _, r := range restaurants {
			price, ok := eligible(r, seg)
			if !ok {
				continue
			}
			n := sameTypeCount[r.Type]
			s := scoreCandidate(r, price, seg, mods, n)
			if s <= 0 {
				continue
			}
			candidates = append(candidates, scoredCandidate{restaurant: r, price: price, score: s})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.score != b.score {
				return a.score > b.score
			}
			if !a.price.Equal(b.price) {
				return a.price.LessThan(b.price)
			}
			if a.restaurant.Reputation != b.restaurant.Reputation {
				return a.restaurant.Reputation > b.restaurant.Reputation
			}
			return a.restaurant.ID < b.restaurant.ID
		})

		remainingSegDemand := segDemand
		for _, c := range candidates {
			if remainingSegDemand <= 0 {
				break
			}
			remCap := capacityRemaining[c.restaurant.ID]
			if remCap <= 0 {
				continue
			}
			take := remainingSegDemand
			if remCap < take {
				take = remCap
			}
			capacityRemaining[c.restaurant.ID] -= take
			remainingSegDemand -= take

			res := result.PerRestaurant[c.restaurant.ID]
			res.AllocatedDemand += take
			res.Served += take

			revenue := c.price.Mul(decimalOf(float64(take)))
			revenueSoFar[c.restaurant.ID] = revenueSoFar[c.restaurant.ID].Add(revenue)
			servedSoFar[c.restaurant.ID] += take
		}

		// Demand that cascaded through every ranked candidate and still
		// found no capacity is genuinely lost to the segment, not just
		// shuffled off to a restaurant that could absorb it. Attribute it
		// to the top-ranked candidate: it is the restaurant customers
		// would have most wanted to reach, so its LostCustomers should
		// reflect the shortfall when nobody in the segment has room.
		if remainingSegDemand > 0 && len(candidates) > 0 {
			top := result.PerRestaurant[candidates[0].restaurant.ID]
			top.AllocatedDemand += remainingSegDemand
		}
	}

	for _, r := range restaurants {
		res := result.PerRestaurant[r.ID]
		res.Revenue = revenueSoFar[r.ID]
		served := servedSoFar[r.ID]
		res.LostCustomers = res.AllocatedDemand - served
		if res.Capacity > 0 {
			res.Utilization = float64(served) / float64(res.Capacity)
		}
		if served > 0 {
			res.AverageTicket = res.Revenue.DivInt(served)
			price, _ := r.MedianMenuPrice()
			satisfaction := 2 + 0.5*(r.QualityScore()-1) - math.Max(0, (price.Float64()-15)*0.1)
			r.PushSatisfaction(satisfaction)
			res.Satisfaction = satisfaction
		}
	}

	return result
}
