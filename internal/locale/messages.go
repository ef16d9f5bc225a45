package locale

import (
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for user-facing notifications. The key doubles as the
// English text.
const (
	MsgReorderFailed   = "Failed to update order, please retry."
	MsgReorderSaved    = "Order saved."
	MsgReorderBusy     = "Another reorder is still in progress."
	MsgReloadFailed    = "Could not reload the list; showing the last confirmed order."
	MsgNothingToMove   = "Item is already at that position."
	MsgTranslationGaps = "Missing translations: %s"
	MsgPromotionEnds   = "Ends in %dd %02dh %02dm %02ds"
	MsgPromotionOver   = "Promotion has ended."
	MsgBookingReceived = "Thank you, %s! We will contact you about %s shortly."
)

var translations = map[Language]map[string]string{
	Indonesian: {
		MsgReorderFailed:   "Gagal memperbarui urutan, silakan coba lagi.",
		MsgReorderSaved:    "Urutan disimpan.",
		MsgReorderBusy:     "Pengurutan lain masih berjalan.",
		MsgReloadFailed:    "Daftar tidak dapat dimuat ulang; menampilkan urutan terakhir yang dikonfirmasi.",
		MsgNothingToMove:   "Item sudah berada di posisi tersebut.",
		MsgTranslationGaps: "Terjemahan belum lengkap: %s",
		MsgPromotionEnds:   "Berakhir dalam %dh %02dj %02dm %02dd",
		MsgPromotionOver:   "Promo telah berakhir.",
		MsgBookingReceived: "Terima kasih, %s! Kami akan segera menghubungi Anda tentang %s.",
	},
	Russian: {
		MsgReorderFailed:   "Не удалось обновить порядок, попробуйте ещё раз.",
		MsgReorderSaved:    "Порядок сохранён.",
		MsgReorderBusy:     "Предыдущее перемещение ещё выполняется.",
		MsgReloadFailed:    "Не удалось перезагрузить список; показан последний подтверждённый порядок.",
		MsgNothingToMove:   "Элемент уже на этой позиции.",
		MsgTranslationGaps: "Нет переводов: %s",
		MsgPromotionEnds:   "До конца акции %dд %02dч %02dм %02dс",
		MsgPromotionOver:   "Акция завершена.",
		MsgBookingReceived: "Спасибо, %s! Мы свяжемся с вами по поводу тура «%s».",
	},
}

var messages = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Primary.Tag()))
	for _, key := range []string{
		MsgReorderFailed, MsgReorderSaved, MsgReorderBusy, MsgReloadFailed, MsgNothingToMove,
		MsgTranslationGaps, MsgPromotionEnds, MsgPromotionOver, MsgBookingReceived,
	} {
		_ = b.SetString(English.Tag(), key, key)
	}
	for lang, msgs := range translations {
		for key, msg := range msgs {
			_ = b.SetString(lang.Tag(), key, msg)
		}
	}
	return b
}

// Printer returns a message printer for lang backed by the notification catalog.
func Printer(lang Language) *message.Printer {
	return message.NewPrinter(lang.Tag(), message.Catalog(messages))
}

// Message formats the notification key in lang.
func Message(lang Language, key string, args ...any) string {
	return Printer(lang).Sprintf(key, args...)
}
