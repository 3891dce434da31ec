package usecase

import "github.com/scentscan/backend/internal/domain"

// SelectBest picks the most cost-effective offer from a normalized result
// list. Only priced rows are considered. When at least two priced rows carry
// a per-ml cost, the minimum price_per_ml wins; otherwise the minimum raw
// price wins. Ties break by earliest position in the input, so selection is
// deterministic for identical inputs. Returns nil when nothing is priced.
func SelectBest(results []domain.PriceResult) *domain.PriceResult {
	var priced []int
	var perML []int
	for i, r := range results {
		if r.Price == nil {
			continue
		}
		priced = append(priced, i)
		if r.PricePerML != nil {
			perML = append(perML, i)
		}
	}

	if len(priced) == 0 {
		return nil
	}

	if len(perML) >= 2 {
		best := perML[0]
		for _, i := range perML[1:] {
			if *results[i].PricePerML < *results[best].PricePerML {
				best = i
			}
		}
		return &results[best]
	}

	best := priced[0]
	for _, i := range priced[1:] {
		if *results[i].Price < *results[best].Price {
			best = i
		}
	}
	return &results[best]
}
