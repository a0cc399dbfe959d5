package usecase

import (
	"villa-rental/internal/data/entity"
	"villa-rental/internal/dto/response"
)

// Summarize computes the mean of ratings in 1..5 and each star's share
// in percent. Out-of-range values are skipped. With no valid ratings the
// average is 0 and every share is 0.
func Summarize(ratings []int) response.RatingSummary {
	var counts [6]int
	sum, count := 0, 0
	for _, r := range ratings {
		if r < 1 || r > 5 {
			continue
		}
		counts[r]++
		sum += r
		count++
	}

	summary := response.RatingSummary{
		Count:        count,
		Distribution: make(map[int]float64, 5),
	}
	for star := 1; star <= 5; star++ {
		summary.Distribution[star] = 0
		if count > 0 {
			summary.Distribution[star] = float64(counts[star]) / float64(count) * 100
		}
	}
	if count > 0 {
		summary.Average = float64(sum) / float64(count)
	}

	return summary
}

func summarizeReviews(reviews []*entity.Review) response.RatingSummary {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return Summarize(ratings)
}
