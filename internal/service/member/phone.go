package member_service

import "hamcrew-club/internal/service"

// FormatPhoneKR - отображение номера: 02-xxx(x)-xxxx для Сеула, иначе 3-4-4
func FormatPhoneKR(raw string) string {
	d := service.NormalizePhone(raw)
	if len(d) >= 2 && d[:2] == "02" {
		switch {
		case len(d) <= 2:
			return d
		case len(d) <= 5:
			return d[:2] + "-" + d[2:]
		case len(d) <= 9:
			return d[:2] + "-" + d[2:5] + "-" + d[5:]
		default:
			return d[:2] + "-" + d[2:6] + "-" + d[6:min(len(d), 10)]
		}
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 7:
		return d[:3] + "-" + d[3:]
	default:
		return d[:3] + "-" + d[3:7] + "-" + d[7:min(len(d), 11)]
	}
}
