// Package pricing は座席クラス・上映フォーマット・開始時刻から
// チケット価格を解決する。金額は小数2桁の decimal で扱い、
// 丸めは最終合計の一度だけ行う。
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
)

// クラス別基本価格
var basePrices = map[seat.Class]decimal.Decimal{
	seat.ClassStandard: decimal.NewFromFloat(12.00),
	seat.ClassPremium:  decimal.NewFromFloat(15.00),
	seat.ClassVIP:      decimal.NewFromFloat(20.00),
}

// フォーマット別の加算額
var formatSurcharges = map[string]decimal.Decimal{
	"3D":   decimal.NewFromFloat(3.00),
	"IMAX": decimal.NewFromFloat(5.00),
	"4DX":  decimal.NewFromFloat(8.00),
}

// 19時以降の上映に加算
var eveningSurcharge = decimal.NewFromFloat(2.00)

const eveningHour = 19

// BasePrice はクラスの基本価格を返す
func BasePrice(class seat.Class) decimal.Decimal {
	if p, ok := basePrices[class]; ok {
		return p
	}
	return basePrices[seat.ClassStandard]
}

// Surcharge はフォーマットと開始時刻による加算額を返す
func Surcharge(format string, start time.Time) decimal.Decimal {
	s := decimal.Zero
	if f, ok := formatSurcharges[format]; ok {
		s = s.Add(f)
	}
	if start.Hour() >= eveningHour {
		s = s.Add(eveningSurcharge)
	}
	return s
}

// Resolve は座席1席の価格（基本価格 + 加算額）を返す
func Resolve(class seat.Class, format string, start time.Time) decimal.Decimal {
	return BasePrice(class).Add(Surcharge(format, start))
}

// Total は小計と手数料から合計を計算する。丸め誤差の蓄積を避けるため、
// 四捨五入（round half-up）はここでのみ行う。
func Total(subtotal, fee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(fee).Round(2)
}
