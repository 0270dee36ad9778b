// Package i18n holds the user-facing API messages in every supported language.
package i18n

import "golang.org/x/text/language"

type Key string

const (
	Welcome Key = "welcome"

	RegisterMissingFields Key = "register.missing_fields"
	RegisterConflict      Key = "register.conflict"
	RegisterSuccess       Key = "register.success"
	RegisterFailed        Key = "register.failed"

	LoginMissingFields Key = "login.missing_fields"
	LoginRejected      Key = "login.rejected"
	LoginFailed        Key = "login.failed"

	SubmitMissingFields Key = "submit.missing_fields"
	SubmitSuccess       Key = "submit.success"
	SubmitFailed        Key = "submit.failed"

	GetMissingFields Key = "get.missing_fields"
	GetNotFound      Key = "get.not_found"
	GetFailed        Key = "get.failed"

	UpdateMissingFields Key = "update.missing_fields"
	UpdateSuccess       Key = "update.success"
	UpdateFailed        Key = "update.failed"

	DeleteMissingFields Key = "delete.missing_fields"
	DeleteSuccess       Key = "delete.success"
	DeleteFailed        Key = "delete.failed"

	UsernameMissingFields Key = "username.missing_fields"
	UsernameConflict      Key = "username.conflict"
	UsernameNotFound      Key = "username.not_found"
	UsernameSuccess       Key = "username.success"
	UsernameFailed        Key = "username.failed"

	InvalidFieldType Key = "invalid_field_type"
	Timeout          Key = "timeout"
)

var supported = []language.Tag{
	language.English,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[Key]string{
	language.English: {
		Welcome: "Welcome to the textkeeper API!",

		RegisterMissingFields: "Email, username and password are required.",
		RegisterConflict:      "That email or username is already registered.",
		RegisterSuccess:       "User registered successfully.",
		RegisterFailed:        "Registration failed. Please try again.",

		LoginMissingFields: "Username and password are required.",
		LoginRejected:      "Invalid username or password.",
		LoginFailed:        "Login failed. Please try again.",

		SubmitMissingFields: "UserId and text are required.",
		SubmitSuccess:       "Text saved successfully.",
		SubmitFailed:        "Failed to save text. Please try again.",

		GetMissingFields: "UserId is required.",
		GetNotFound:      "Text not found.",
		GetFailed:        "Failed to fetch text. Please try again.",

		UpdateMissingFields: "UserId and text are required for an update.",
		UpdateSuccess:       "Text updated successfully.",
		UpdateFailed:        "Failed to update text. Please try again.",

		DeleteMissingFields: "UserId is required.",
		DeleteSuccess:       "Text deleted successfully.",
		DeleteFailed:        "Failed to delete text. Please try again.",

		UsernameMissingFields: "UserId and newUsername are required.",
		UsernameConflict:      "That username is already taken.",
		UsernameNotFound:      "User not found.",
		UsernameSuccess:       "Username updated successfully.",
		UsernameFailed:        "Failed to update username. Please try again.",

		InvalidFieldType: "Every field must be a string.",
		Timeout:          "The request timed out. Please try again.",
	},
	language.Indonesian: {
		Welcome: "Selamat datang di textkeeper API!",

		RegisterMissingFields: "Email, Username, dan Password diperlukan.",
		RegisterConflict:      "Email atau username sudah terdaftar.",
		RegisterSuccess:       "Pengguna berhasil terdaftar.",
		RegisterFailed:        "Gagal melakukan registrasi. Silakan coba lagi.",

		LoginMissingFields: "Username dan Password diperlukan.",
		LoginRejected:      "Username atau password salah.",
		LoginFailed:        "Gagal melakukan login. Silakan coba lagi.",

		SubmitMissingFields: "UserId dan teks diperlukan.",
		SubmitSuccess:       "Teks berhasil disimpan.",
		SubmitFailed:        "Gagal menyimpan teks. Silakan coba lagi.",

		GetMissingFields: "UserId diperlukan.",
		GetNotFound:      "Teks tidak ditemukan.",
		GetFailed:        "Gagal mengambil teks. Silakan coba lagi.",

		UpdateMissingFields: "UserId dan teks diperlukan untuk pembaruan.",
		UpdateSuccess:       "Teks berhasil diperbarui.",
		UpdateFailed:        "Gagal memperbarui teks. Silakan coba lagi.",

		DeleteMissingFields: "UserId diperlukan.",
		DeleteSuccess:       "Teks berhasil dihapus.",
		DeleteFailed:        "Gagal menghapus teks. Silakan coba lagi.",

		UsernameMissingFields: "UserId dan newUsername diperlukan.",
		UsernameConflict:      "Username sudah digunakan.",
		UsernameNotFound:      "Pengguna tidak ditemukan.",
		UsernameSuccess:       "Username berhasil diperbarui.",
		UsernameFailed:        "Gagal memperbarui username. Silakan coba lagi.",

		InvalidFieldType: "Setiap kolom harus berupa teks.",
		Timeout:          "Permintaan melebihi batas waktu. Silakan coba lagi.",
	},
}

// Match picks the supported language closest to an Accept-Language header.
// English is the fallback.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supported[index]
}

// Message returns the text for key in lang, falling back to English.
func Message(lang language.Tag, key Key) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	return catalog[language.English][key]
}

// Localize is Match followed by Message.
func Localize(acceptLanguage string, key Key) string {
	return Message(Match(acceptLanguage), key)
}
