package i18n

import "github.com/khoborpatra/khoborpatra/internal/constants"

var catalogs = map[string]map[string]string{
	constants.LocaleEn: {
		"success":         "success",
		"welcome":         "welcome to the khoborpatra api",
		"created":         "created",
		"updated":         "updated",
		"deleted":         "deleted",
		"subscribed":      "subscribed",
		"unsubscribed":    "unsubscribed",
		"comment.pending": "comment received and awaiting review",

		"error.validation_failed":         "validation failed",
		"error.invalid_payload":           "request body is not valid",
		"error.invalid_id":                "id is not valid",
		"error.not_found":                 "resource not found",
		"error.article_not_found":         "article not found",
		"error.category_not_found":        "category not found",
		"error.tag_not_found":             "tag not found",
		"error.comment_not_found":         "comment not found",
		"error.user_not_found":            "user not found",
		"error.parent_comment_not_found":  "parent comment not found",
		"error.parent_comment_mismatch":   "parent comment belongs to another article",
		"error.reply_depth_exceeded":      "replies cannot be nested further",
		"error.slug_exists":               "slug is already in use",
		"error.email_exists":              "email is already in use",
		"error.category_has_articles":     "category still has articles",
		"error.category_has_children":     "category still has child categories",
		"error.parent_category_not_found": "parent category not found",
		"error.self_parent":               "category cannot be its own parent",
		"error.tag_in_use":                "tag is still attached to articles",
		"error.unknown_tag":               "one or more tag ids do not exist",
		"error.user_has_articles":         "user is still credited on articles",
		"error.invalid_status":            "invalid article status",
		"error.invalid_role":              "invalid user role",
		"error.invalid_moderation_action": "moderation action must be approve or reject",
		"error.duplicate_entry":           "a record with that value already exists",
		"error.invalid_reference":         "a referenced record does not exist",
		"error.rate_limited":              "too many requests, slow down",
		"error.internal":                  "something went wrong on our side",
		"error.db_unavailable":            "database is unavailable",
	},
	constants.LocaleBn: {
		"success":         "সফল হয়েছে",
		"welcome":         "খবরপত্র এপিআই-এ স্বাগতম",
		"created":         "তৈরি হয়েছে",
		"updated":         "হালনাগাদ হয়েছে",
		"deleted":         "মুছে ফেলা হয়েছে",
		"subscribed":      "সাবস্ক্রিপশন সম্পন্ন হয়েছে",
		"unsubscribed":    "সাবস্ক্রিপশন বাতিল হয়েছে",
		"comment.pending": "মন্তব্য গৃহীত হয়েছে এবং পর্যালোচনার অপেক্ষায় আছে",

		"error.validation_failed":         "যাচাইকরণ ব্যর্থ হয়েছে",
		"error.invalid_payload":           "অনুরোধের বিষয়বস্তু সঠিক নয়",
		"error.invalid_id":                "আইডি সঠিক নয়",
		"error.not_found":                 "কিছু পাওয়া যায়নি",
		"error.article_not_found":         "সংবাদটি পাওয়া যায়নি",
		"error.category_not_found":        "বিভাগটি পাওয়া যায়নি",
		"error.tag_not_found":             "ট্যাগটি পাওয়া যায়নি",
		"error.comment_not_found":         "মন্তব্যটি পাওয়া যায়নি",
		"error.user_not_found":            "ব্যবহারকারী পাওয়া যায়নি",
		"error.parent_comment_not_found":  "মূল মন্তব্যটি পাওয়া যায়নি",
		"error.parent_comment_mismatch":   "মূল মন্তব্যটি অন্য সংবাদের",
		"error.reply_depth_exceeded":      "উত্তরের ভেতরে আর উত্তর দেওয়া যাবে না",
		"error.slug_exists":               "স্লাগটি ইতিমধ্যে ব্যবহৃত হচ্ছে",
		"error.email_exists":              "ইমেইলটি ইতিমধ্যে ব্যবহৃত হচ্ছে",
		"error.category_has_articles":     "বিভাগটিতে এখনও সংবাদ রয়েছে",
		"error.category_has_children":     "বিভাগটির অধীনে উপবিভাগ রয়েছে",
		"error.parent_category_not_found": "মূল বিভাগটি পাওয়া যায়নি",
		"error.self_parent":               "বিভাগ নিজের মূল বিভাগ হতে পারে না",
		"error.tag_in_use":                "ট্যাগটি এখনও সংবাদের সাথে যুক্ত",
		"error.unknown_tag":               "এক বা একাধিক ট্যাগ আইডি বিদ্যমান নেই",
		"error.user_has_articles":         "ব্যবহারকারীর নামে এখনও সংবাদ রয়েছে",
		"error.invalid_status":            "সংবাদের অবস্থা সঠিক নয়",
		"error.invalid_role":              "ব্যবহারকারীর ভূমিকা সঠিক নয়",
		"error.invalid_moderation_action": "মডারেশন অ্যাকশন approve বা reject হতে হবে",
		"error.duplicate_entry":           "এই মানের একটি রেকর্ড ইতিমধ্যে রয়েছে",
		"error.invalid_reference":         "উল্লেখ করা রেকর্ডটি বিদ্যমান নেই",
		"error.rate_limited":              "অনেক বেশি অনুরোধ, একটু অপেক্ষা করুন",
		"error.internal":                  "আমাদের দিকে একটি সমস্যা হয়েছে",
		"error.db_unavailable":            "ডাটাবেস পাওয়া যাচ্ছে না",
	},
}
