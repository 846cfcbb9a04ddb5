package i18n

var tables = map[Locale]map[string]string{
	Turkish: {
		"sections.experience":  "Deneyim",
		"sections.education":   "Eğitim",
		"sections.blog":        "Blog",
		"sections.contact":     "İletişim",
		"sections.skills":      "Yetenekler",
		"contact.info":         "İletişim Bilgileri",
		"contact.sendMessage":  "Mesaj Gönder",
		"contact.form.name":    "Ad Soyad",
		"contact.form.email":   "E-posta",
		"contact.form.phone":   "Telefon",
		"contact.form.message": "Mesaj",
		"contact.form.send":    "Gönder",
		"contact.success":      "Mesajınız başarıyla gönderildi.",
		"contact.error":        "Mesaj gönderilirken bir hata oluştu.",
		"contact.invalid":      "Lütfen formdaki alanları kontrol edin.",
		"contact.rateLimited":  "Çok fazla deneme yaptınız, lütfen biraz sonra tekrar deneyin.",
		"blog.readMore":        "Devamını oku",
		"blog.noPosts":         "Henüz blog yazısı yok.",
		"blog.minutes":         "dakika",
		"experience.current":   "Günümüz",
		"experience.total":     "Toplam deneyim",
		"employment.fullTime":  "Tam Zamanlı",
		"employment.partTime":  "Yarı Zamanlı",
		"employment.contract":  "Sözleşmeli",
		"employment.freelance": "Serbest",
		"working.hybrid":       "Hibrit",
		"working.remote":       "Uzaktan",
		"working.office":       "Ofisten",
		"skills.showAll":       "Tüm Yetenekleri Göster",
		"error.title":          "Bir Hata Oluştu",
		"error.message":        "Üzgünüz, bir şeyler yanlış gitti.",
	},
	English: {
		"sections.experience":  "Experience",
		"sections.education":   "Education",
		"sections.blog":        "Blog",
		"sections.contact":     "Contact",
		"sections.skills":      "Skills",
		"contact.info":         "Contact Information",
		"contact.sendMessage":  "Send Message",
		"contact.form.name":    "Full Name",
		"contact.form.email":   "Email",
		"contact.form.phone":   "Phone",
		"contact.form.message": "Message",
		"contact.form.send":    "Send",
		"contact.success":      "Your message has been sent successfully.",
		"contact.error":        "An error occurred while sending your message.",
		"contact.invalid":      "Please check the fields in the form.",
		"contact.rateLimited":  "Too many attempts, please try again in a moment.",
		"blog.readMore":        "Read more",
		"blog.noPosts":         "No blog posts yet.",
		"blog.minutes":         "min read",
		"experience.current":   "Present",
		"experience.total":     "Total experience",
		"employment.fullTime":  "Full Time",
		"employment.partTime":  "Part Time",
		"employment.contract":  "Contract",
		"employment.freelance": "Freelance",
		"working.hybrid":       "Hybrid",
		"working.remote":       "Remote",
		"working.office":       "Office",
		"skills.showAll":       "Show All Skills",
		"error.title":          "Something Went Wrong",
		"error.message":        "Sorry, something went wrong.",
	},
}

// T looks up key in l's table, falling back to the default locale and
// finally to the key itself.
func T(l Locale, key string) string {
	if s, ok := tables[l][key]; ok {
		return s
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return key
}

// Table returns a copy of l's string table for templates.
func Table(l Locale) map[string]string {
	out := make(map[string]string, len(tables[Default]))
	for k, v := range tables[Default] {
		out[k] = v
	}
	for k, v := range tables[l] {
		out[k] = v
	}
	return out
}
