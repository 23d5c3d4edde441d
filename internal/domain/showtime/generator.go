package showtime

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/pricing"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
)

// 1日の上映枠の候補時刻
var baseTimes = []struct{ hour, minute int }{
	{10, 0}, {13, 0}, {16, 0}, {19, 0}, {22, 0},
}

var formats = []Format{Format2D, Format3D, FormatIMAX, Format4DX}

var theaters = []string{"Screen 1", "Screen 2", "Screen 3", "IMAX Theater"}

// Generate は映画と日付から上映回の一覧を生成する。枠数は3〜5で、
// 終了時刻は開始時刻 + 上映時間。IDは (映画, 日付, 枠番号) から決まるため、
// 同じ上映回は常に同じIDで参照できる。
func Generate(movieID string, date time.Time, durationMin int, rng *rand.Rand) []*Showtime {
	count := 3 + rng.Intn(3)
	showtimes := make([]*Showtime, 0, count)

	for i, slot := range baseTimes[:count] {
		start := time.Date(date.Year(), date.Month(), date.Day(), slot.hour, slot.minute, 0, 0, date.Location())
		format := formats[rng.Intn(len(formats))]
		st := &Showtime{
			ID:        fmt.Sprintf("st_%s_%s_%d", movieID, date.Format("20060102"), i),
			MovieID:   movieID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(durationMin) * time.Minute),
			Theater:   theaters[rng.Intn(len(theaters))],
			Screen:    fmt.Sprintf("Screen %d", i+1),
			Format:    format,
			Price:     pricing.Resolve(seat.ClassStandard, string(format), start),
		}
		showtimes = append(showtimes, st)
	}

	return showtimes
}
