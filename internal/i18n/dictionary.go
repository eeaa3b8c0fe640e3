package i18n

// DefaultStrings is the shipped source-language string table. Keys match the
// web client's asset bundle so a translation cache written by either client
// resolves against the same originals.
var DefaultStrings = map[string]string{
	"app_title":     "Government Scheme Assistant",
	"signin":        "Sign In →",
	"logout":        "Log Out",
	"edit_profile":  "Edit Profile",
	"status-online": "Online",
	"cta-btn":       "Explore Schemes",

	"chat_welcome_title": "Welcome to Government Scheme Assistant",
	"chat_welcome_desc":  "I can help you understand eligibility, benefits and application steps for Indian government schemes in your preferred language.",
	"chat_limit_msg":     "3 free messages remaining",

	"signin-title":      "Welcome back",
	"signin-email":      "Email address",
	"auth_lbl_password": "Password",

	"sf_lbl_name":    "Full name",
	"sf_lbl_gender":  "Gender",
	"sf_opt_male":    "Male",
	"sf_opt_female":  "Female",
	"sf_lbl_age":     "Age",
	"sf_opt_sel_age": "Select age",
	"sf_lbl_state":   "State",
	"sf_lbl_area":    "Area type",
	"sf_opt_urban":   "Urban",
	"sf_opt_rural":   "Rural",
	"sf_lbl_cat":     "Category",
	"sf_lbl_pwd":     "Person with disability?",
	"sf_opt_yes":     "Yes",
	"sf_opt_no":      "No",
	"sf_lbl_minor":   "Minority?",
	"sf_lbl_student": "Student?",
	"sf_lbl_status":  "Employment status",
	"sf_emp_emp":     "Employed",
	"sf_emp_unemp":   "Unemployed",
	"sf_emp_self":    "Self-employed",
	"sf_lbl_govt":    "Government employee?",
	"sf_lbl_inc_ann": "Annual income (₹)",
	"sf_lbl_inc_fam": "Family income (₹)",
	"sf_submit_btn":  "Submit profile and start chat",
	"sf_loading":     "Setting up your profile...",
}

// DefaultPlaceholders ship separately; they share keys with labels but never
// collide thanks to the placeholder suffix.
var DefaultPlaceholders = map[string]string{
	"chat_input_placeholder": "Type your message...",
	"auth_lbl_password":      "Enter your password",
	"sf_lbl_name":            "Enter your name",
}

// Dictionary is a per-language pre-translated table keyed by translation key.
type Dictionary map[string]string

// dictionaries are the pre-shipped tables for instant switching. The source
// language maps to nil: use originals. Coverage is intentionally partial;
// anything missing falls through to the cache and then the batch endpoint.
var dictionaries = map[string]Dictionary{
	"en_XX": nil,

	"hi_IN": {
		"app_title":     "सरकारी योजना सहायक",
		"signin":        "साइन इन →",
		"logout":        "लॉग आउट",
		"edit_profile":  "प्रोफ़ाइल संपादित करें",
		"status-online": "ऑनलाइन",
		"cta-btn":       "योजनाएं देखें",

		"chat_welcome_title": "सरकारी योजना सहायक में आपका स्वागत है",
		"chat_welcome_desc":  "मैं आपकी पसंदीदा भाषा में भारतीय सरकारी योजनाओं की पात्रता, लाभ और आवेदन प्रक्रिया को समझने में मदद कर सकता हूं।",
		"chat_limit_msg":     "३ मुफ्त संदेश शेष",

		"signin-title":      "वापस स्वागत है",
		"signin-email":      "ईमेल पता",
		"auth_lbl_password": "पासवर्ड",

		"sf_lbl_gender":  "लिंग",
		"sf_opt_male":    "पुरुष",
		"sf_opt_female":  "महिला",
		"sf_lbl_age":     "आयु",
		"sf_opt_sel_age": "आयु चुनें",
		"sf_lbl_state":   "राज्य",
		"sf_lbl_area":    "क्षेत्र प्रकार",
		"sf_opt_urban":   "शहरी",
		"sf_opt_rural":   "ग्रामीण",
		"sf_lbl_cat":     "श्रेणी",
		"sf_lbl_pwd":     "विकलांग व्यक्ति?",
		"sf_opt_yes":     "हां",
		"sf_opt_no":      "नहीं",
		"sf_lbl_minor":   "अल्पसंख्यक?",
		"sf_lbl_student": "छात्र?",
		"sf_lbl_status":  "रोजगार स्थिति",
		"sf_emp_emp":     "नौकरीपेशा",
		"sf_emp_unemp":   "बेरोजगार",
		"sf_emp_self":    "स्व-रोजगार",
		"sf_lbl_govt":    "सरकारी कर्मचारी?",
		"sf_lbl_inc_ann": "वार्षिक आय (₹)",
		"sf_lbl_inc_fam": "पारिवारिक आय (₹)",
		"sf_submit_btn":  "प्रोफ़ाइल सबमिट करें और चैट शुरू करें",
		"sf_loading":     "आपकी प्रोफ़ाइल सेट हो रही है...",

		"chat_input_placeholder" + PlaceholderSuffix: "अपना संदेश टाइप करें...",
		"auth_lbl_password" + PlaceholderSuffix:      "अपना पासवर्ड दर्ज करें",
	},

	"ta_IN": {
		"app_title":     "அரசு திட்ட உதவியாளர்",
		"signin":        "உள்நுழையவும் →",
		"logout":        "வெளியேறு",
		"edit_profile":  "சுயவிவரத்தை திருத்து",
		"status-online": "ஆன்லைன்",
		"cta-btn":       "திட்டங்களை ஆராயுங்கள்",

		"chat_welcome_title": "அரசு திட்ட உதவியாளருக்கு வரவேற்கிறோம்",
		"chat_limit_msg":     "௩ இலவச செய்திகள் மீதமுள்ளன",

		"sf_lbl_gender":  "பாலினம்",
		"sf_opt_male":    "ஆண்",
		"sf_opt_female":  "பெண்",
		"sf_lbl_age":     "வயது",
		"sf_opt_sel_age": "வயதைத் தேர்ந்தெடுக்கவும்",
		"sf_lbl_state":   "மாநிலம்",
		"sf_opt_urban":   "நகர்ப்புற",
		"sf_opt_rural":   "கிராமப்புற",
		"sf_submit_btn":  "சுயவிவரத்தை சமர்ப்பித்து அரட்டையைத் தொடங்கு",

		"chat_input_placeholder" + PlaceholderSuffix: "உங்கள் செய்தியை தட்டச்சு செய்யவும்...",
	},

	"bn_IN": {
		"app_title":     "সরকারি প্রকল্প সহায়ক",
		"signin":        "সাইন ইন →",
		"logout":        "লগ আউট",
		"edit_profile":  "প্রোফাইল সম্পাদনা করুন",
		"status-online": "অনলাইন",
		"cta-btn":       "প্রকল্পগুলি অন্বেষণ করুন",

		"chat_welcome_title": "সরকারি প্রকল্প সহায়কে স্বাগতম",
		"chat_limit_msg":     "৩টি বিনামূল্যে বার্তা অবশিষ্ট",

		"sf_lbl_gender":  "লিঙ্গ",
		"sf_opt_male":    "পুরুষ",
		"sf_opt_female":  "মহিলা",
		"sf_lbl_age":     "বয়স",
		"sf_opt_sel_age": "বয়স নির্বাচন করুন",
		"sf_lbl_state":   "রাজ্য",
		"sf_opt_urban":   "শহুরে",
		"sf_opt_rural":   "গ্রামীণ",
		"sf_submit_btn":  "প্রোফাইল জমা দিন এবং চ্যাট শুরু করুন",

		"chat_input_placeholder" + PlaceholderSuffix: "আপনার বার্তা টাইপ করুন...",
	},
}

// StaticDictionary returns the pre-shipped table for lang, or nil.
func StaticDictionary(lang string) Dictionary {
	return dictionaries[lang]
}

// NewDefaultCatalog registers the shipped string table into a fresh catalog.
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	for key, text := range DefaultStrings {
		c.Register(key, text)
	}
	for key, ph := range DefaultPlaceholders {
		c.RegisterPlaceholder(key, ph)
	}
	return c
}
