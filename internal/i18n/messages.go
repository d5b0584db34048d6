package i18n

// Message keys used by the HTTP layer and services.
const (
	MsgOTPSent             = "otp.sent"
	MsgOTPInvalid          = "otp.invalid"
	MsgOTPExpired          = "otp.expired"
	MsgOTPAttemptsExceeded = "otp.attempts_exceeded"
	MsgOTPThrottled        = "otp.throttled"
	MsgLoginSuccess        = "auth.login_success"
	MsgLogoutSuccess       = "auth.logout_success"
	MsgUnauthorized        = "auth.unauthorized"
	MsgForbidden           = "auth.forbidden"
	MsgInvalidPhone        = "auth.invalid_phone"
	MsgValidationFailed    = "validation.failed"
	MsgNotFound            = "common.not_found"
	MsgMethodNotAllowed    = "common.method_not_allowed"
	MsgInternalError       = "common.internal_error"
	MsgOrderCreated        = "order.created"
	MsgOrderCancelled      = "order.cancelled"
	MsgOrderImmutable      = "order.immutable"
	MsgInvalidTransition   = "order.invalid_transition"
	MsgInsufficientStock   = "order.insufficient_stock"
	MsgInvalidDateRange    = "order.invalid_date_range"
	MsgPaymentFailed       = "order.payment_failed"
	MsgAddressLimit        = "address.limit_reached"
	MsgSaved               = "common.saved"
	MsgDeleted             = "common.deleted"
)

var messages = map[string]map[string]string{
	LangRu: {
		MsgOTPSent:             "Код подтверждения отправлен",
		MsgOTPInvalid:          "Неверный код подтверждения",
		MsgOTPExpired:          "Срок действия кода истёк, запросите новый",
		MsgOTPAttemptsExceeded: "Превышено число попыток, запросите новый код",
		MsgOTPThrottled:        "Код уже отправлен, подождите минуту",
		MsgLoginSuccess:        "Вход выполнен",
		MsgLogoutSuccess:       "Выход выполнен",
		MsgUnauthorized:        "Требуется авторизация",
		MsgForbidden:           "Доступ запрещён",
		MsgInvalidPhone:        "Неверный формат номера телефона",
		MsgValidationFailed:    "Проверьте правильность заполнения полей",
		MsgNotFound:            "Не найдено",
		MsgMethodNotAllowed:    "Метод не поддерживается",
		MsgInternalError:       "Внутренняя ошибка сервера, попробуйте позже",
		MsgOrderCreated:        "Заказ успешно оформлен",
		MsgOrderCancelled:      "Заказ отменён",
		MsgOrderImmutable:      "Завершённый заказ нельзя изменить",
		MsgInvalidTransition:   "Недопустимая смена статуса заказа",
		MsgInsufficientStock:   "Недостаточно товара на выбранные даты",
		MsgInvalidDateRange:    "Неверный период аренды",
		MsgPaymentFailed:       "Оплата не прошла",
		MsgAddressLimit:        "Можно сохранить не более 5 адресов",
		MsgSaved:               "Сохранено",
		MsgDeleted:             "Удалено",
	},
	LangEn: {
		MsgOTPSent:             "Verification code sent",
		MsgOTPInvalid:          "Invalid verification code",
		MsgOTPExpired:          "The code has expired, request a new one",
		MsgOTPAttemptsExceeded: "Too many attempts, request a new code",
		MsgOTPThrottled:        "A code was already sent, wait a minute",
		MsgLoginSuccess:        "Logged in",
		MsgLogoutSuccess:       "Logged out",
		MsgUnauthorized:        "Authorization required",
		MsgForbidden:           "Access denied",
		MsgInvalidPhone:        "Invalid phone number format",
		MsgValidationFailed:    "Please check the submitted fields",
		MsgNotFound:            "Not found",
		MsgMethodNotAllowed:    "Method not allowed",
		MsgInternalError:       "Internal server error, try again later",
		MsgOrderCreated:        "Order placed successfully",
		MsgOrderCancelled:      "Order cancelled",
		MsgOrderImmutable:      "A completed order cannot be changed",
		MsgInvalidTransition:   "Invalid order status change",
		MsgInsufficientStock:   "Not enough stock for the selected dates",
		MsgInvalidDateRange:    "Invalid rental period",
		MsgPaymentFailed:       "Payment failed",
		MsgAddressLimit:        "You can save at most 5 addresses",
		MsgSaved:               "Saved",
		MsgDeleted:             "Deleted",
	},
	LangUz: {
		MsgOTPSent:             "Tasdiqlash kodi yuborildi",
		MsgOTPInvalid:          "Tasdiqlash kodi noto'g'ri",
		MsgOTPExpired:          "Kod muddati tugadi, yangisini so'rang",
		MsgOTPAttemptsExceeded: "Urinishlar soni oshib ketdi, yangi kod so'rang",
		MsgOTPThrottled:        "Kod allaqachon yuborilgan, bir daqiqa kuting",
		MsgLoginSuccess:        "Kirish muvaffaqiyatli",
		MsgLogoutSuccess:       "Chiqish muvaffaqiyatli",
		MsgUnauthorized:        "Avtorizatsiya talab qilinadi",
		MsgForbidden:           "Ruxsat berilmagan",
		MsgInvalidPhone:        "Telefon raqami formati noto'g'ri",
		MsgValidationFailed:    "Maydonlar to'g'ri to'ldirilganini tekshiring",
		MsgNotFound:            "Topilmadi",
		MsgMethodNotAllowed:    "Metod qo'llab-quvvatlanmaydi",
		MsgInternalError:       "Serverda ichki xatolik, keyinroq urinib ko'ring",
		MsgOrderCreated:        "Buyurtma muvaffaqiyatli rasmiylashtirildi",
		MsgOrderCancelled:      "Buyurtma bekor qilindi",
		MsgOrderImmutable:      "Yakunlangan buyurtmani o'zgartirib bo'lmaydi",
		MsgInvalidTransition:   "Buyurtma holatini bunday o'zgartirib bo'lmaydi",
		MsgInsufficientStock:   "Tanlangan sanalar uchun mahsulot yetarli emas",
		MsgInvalidDateRange:    "Ijara davri noto'g'ri",
		MsgPaymentFailed:       "To'lov amalga oshmadi",
		MsgAddressLimit:        "Ko'pi bilan 5 ta manzil saqlash mumkin",
		MsgSaved:               "Saqlandi",
		MsgDeleted:             "O'chirildi",
	},
}
