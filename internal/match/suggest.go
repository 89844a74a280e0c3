package match

import (
	"encoding/json"
	"log"
	"math"
	"sort"
	"strings"

	"travelmatch/backend/internal/config"
	"travelmatch/backend/internal/models"
	"travelmatch/backend/pkg/apperrors"
)

// Suggest ranks candidate users for a new match request. Candidates exclude
// the requester, inactive or unverified accounts, and anyone already
// connected to the requester by a match of any status. When a reference
// travel plan is given, candidates are first restricted to users owning a
// plan with an overlapping destination, overlapping dates and the same
// travel type. Plain (plan-less) results are cached in Redis per user.
func (s *Service) Suggest(userID string, travelPlanID *string, limit int) ([]models.MatchSuggestion, error) {
	if limit < 1 || limit > config.MaxSuggestions {
		limit = config.MaxSuggestions
	}

	if travelPlanID == nil {
		if cached := s.cachedSuggestions(userID); cached != nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	requester, err := s.Storage.GetUser(userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load requester", err)
	}
	if requester == nil {
		return nil, apperrors.NotFound("user not found")
	}

	var refPlan *models.TravelPlan
	if travelPlanID != nil {
		refPlan, err = s.Storage.GetTravelPlan(*travelPlanID)
		if err != nil {
			return nil, apperrors.Internal("failed to load travel plan", err)
		}
		if refPlan == nil {
			return nil, apperrors.NotFound("travel plan not found")
		}
	}

	connected, err := s.Storage.ListConnectedUserIDs(userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list existing connections", err)
	}

	candidates, err := s.Storage.ListCandidateUsers(append(connected, userID))
	if err != nil {
		return nil, apperrors.Internal("failed to list candidates", err)
	}

	if refPlan != nil {
		candidates, err = s.filterByPlan(candidates, refPlan)
		if err != nil {
			return nil, err
		}
	}

	suggestions := rankCandidates(requester, candidates)
	if travelPlanID == nil {
		s.cacheSuggestions(userID, suggestions)
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// filterByPlan keeps candidates owning at least one plan compatible with the
// reference: destination substring overlap (case-insensitive, either way),
// date-range intersection and identical travel type.
func (s *Service) filterByPlan(candidates []models.User, ref *models.TravelPlan) ([]models.User, error) {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	plans, err := s.Storage.ListTravelPlans(ids)
	if err != nil {
		return nil, apperrors.Internal("failed to list candidate plans", err)
	}

	compatible := make(map[string]bool)
	for _, p := range plans {
		if plansCompatible(ref, &p) {
			compatible[p.OwnerID] = true
		}
	}

	filtered := candidates[:0]
	for _, c := range candidates {
		if compatible[c.ID] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func plansCompatible(ref, other *models.TravelPlan) bool {
	if other.TravelType != ref.TravelType {
		return false
	}
	if !other.OverlapsDates(ref.StartDate, ref.EndDate) {
		return false
	}
	a := strings.ToLower(ref.Destination)
	b := strings.ToLower(other.Destination)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// rankCandidates scores each candidate by shared declared interests over the
// requester's total interest count (0-100, rounded). Ties break by review
// volume descending, then by ID for a stable order.
func rankCandidates(requester *models.User, candidates []models.User) []models.MatchSuggestion {
	mine := make(map[string]bool, len(requester.Interests))
	for _, interest := range requester.Interests {
		mine[strings.ToLower(interest)] = true
	}

	suggestions := make([]models.MatchSuggestion, 0, len(candidates))
	for _, c := range candidates {
		var shared []string
		for _, interest := range c.Interests {
			if mine[strings.ToLower(interest)] {
				shared = append(shared, interest)
			}
		}

		score := 0
		if len(requester.Interests) > 0 {
			score = int(math.Round(float64(len(shared)) / float64(len(requester.Interests)) * 100))
		}

		suggestions = append(suggestions, models.MatchSuggestion{
			UserID:          c.ID,
			DisplayName:     c.DisplayName,
			Score:           score,
			SharedInterests: shared,
			ReviewCount:     c.ReviewCount,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		if suggestions[i].ReviewCount != suggestions[j].ReviewCount {
			return suggestions[i].ReviewCount > suggestions[j].ReviewCount
		}
		return suggestions[i].UserID < suggestions[j].UserID
	})
	return suggestions
}

func (s *Service) cachedSuggestions(userID string) []models.MatchSuggestion {
	payload, err := s.Storage.GetCachedSuggestions(userID)
	if err != nil {
		log.Printf("WARNING: Suggestion cache read failed for %s: %v", userID, err)
		return nil
	}
	if payload == nil {
		return nil
	}
	var suggestions []models.MatchSuggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil
	}
	return suggestions
}

func (s *Service) cacheSuggestions(userID string, suggestions []models.MatchSuggestion) {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := s.Storage.CacheSuggestions(userID, payload); err != nil {
		log.Printf("WARNING: Suggestion cache write failed for %s: %v", userID, err)
	}
}
