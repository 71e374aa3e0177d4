package inventory

import (
	"fmt"
	"time"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// Bucket is a discrete urgency class derived from days until expiry.
type Bucket string

const (
	BucketNone     Bucket = "none"
	BucketExpired  Bucket = "expired"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketSoon     Bucket = "soon"
	BucketWeek     Bucket = "week"
	BucketSafe     Bucket = "safe"
)

// attentionDays is the horizon of the expiring filter and facet.
const attentionDays = 3

// Classification is the result of Classify. DaysRemaining is nil when the
// item has no expiry date.
type Classification struct {
	Bucket        Bucket `json:"bucket"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
	IsExpired     bool   `json:"is_expired"`
	Label         string `json:"label,omitempty"`
}

// ExpiringSoon is true for today, tomorrow and soon. Expired items are not
// expiring soon.
func (c Classification) ExpiringSoon() bool {
	switch c.Bucket {
	case BucketToday, BucketTomorrow, BucketSoon:
		return true
	}
	return false
}

// NeedsAttention is true when the item expires within attentionDays or has
// already expired.
func (c Classification) NeedsAttention() bool {
	return c.DaysRemaining != nil && *c.DaysRemaining <= attentionDays
}

// Today is the calendar date of now in now's location.
func Today(now time.Time) models.Date {
	return models.DateOf(now)
}

// DaysUntil counts whole days from today to expiry. Time of day never
// affects the result.
func DaysUntil(expiry models.Date, now time.Time) int {
	return expiry.DaysSince(Today(now))
}

// Classify maps an optional expiry date to an urgency bucket relative to now.
func Classify(expiry *models.Date, now time.Time) Classification {
	if expiry == nil || expiry.IsZero() {
		return Classification{Bucket: BucketNone}
	}
	days := DaysUntil(*expiry, now)
	return Classification{
		Bucket:        bucketFor(days),
		DaysRemaining: &days,
		IsExpired:     days < 0,
		Label:         expiryLabel(days),
	}
}

func bucketFor(days int) Bucket {
	switch {
	case days < 0:
		return BucketExpired
	case days == 0:
		return BucketToday
	case days == 1:
		return BucketTomorrow
	case days <= attentionDays:
		return BucketSoon
	case days <= 7:
		return BucketWeek
	default:
		return BucketSafe
	}
}

func expiryLabel(days int) string {
	switch {
	case days < 0:
		return "已过期"
	case days == 0:
		return "今天过期"
	case days == 1:
		return "明天过期"
	default:
		return fmt.Sprintf("剩 %d 天", days)
	}
}

// RelativeLabel renders the expiry date relative to today, e.g. "昨天过期"
// or "3周后过期". It returns "" when there is no date.
func RelativeLabel(expiry *models.Date, now time.Time) string {
	if expiry == nil || expiry.IsZero() {
		return ""
	}
	days := DaysUntil(*expiry, now)
	if days < 0 {
		ago := -days
		switch {
		case ago == 1:
			return "昨天过期"
		case ago <= 7:
			return fmt.Sprintf("%d天前过期", ago)
		case ago <= 30:
			return fmt.Sprintf("%d周前过期", ago/7)
		default:
			return fmt.Sprintf("%d个月前过期", ago/30)
		}
	}
	switch {
	case days == 0:
		return "今天过期"
	case days == 1:
		return "明天过期"
	case days == 2:
		return "后天过期"
	case days <= 7:
		return fmt.Sprintf("%d天后过期", days)
	case days <= 30:
		return fmt.Sprintf("%d周后过期", days/7)
	default:
		return fmt.Sprintf("%d个月后过期", days/30)
	}
}

// DurationUnit is the unit of a shelf-life duration entered instead of a date.
type DurationUnit string

const (
	UnitDay   DurationUnit = "day"
	UnitWeek  DurationUnit = "week"
	UnitMonth DurationUnit = "month"
)

// ExpiryFromDuration converts "expires in n units" into a calendar date
// counted from today.
func ExpiryFromDuration(now time.Time, n int, unit DurationUnit) (models.Date, error) {
	if n < 0 {
		return models.Date{}, &ValidationError{Field: "duration", Message: "must not be negative"}
	}
	today := Today(now)
	switch unit {
	case UnitDay, "":
		return today.AddDays(n), nil
	case UnitWeek:
		return today.AddDays(7 * n), nil
	case UnitMonth:
		return today.AddMonths(n), nil
	default:
		return models.Date{}, &ValidationError{Field: "unit", Message: fmt.Sprintf("unknown unit %q", unit)}
	}
}
