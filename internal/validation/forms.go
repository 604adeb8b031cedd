package validation

import (
	"fmt"
	"regexp"

	"github.com/mkweon/wordvault-backend/internal/dto"
	"github.com/mkweon/wordvault-backend/internal/models"
)

var (
	categoryNameRe = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	// Letters from any alphabet, spaces and dashes. Word forms span scripts,
	// so ASCII-only checks are wrong here.
	wordRe    = regexp.MustCompile(`^[\p{L}\p{Zs}-]+$`)
	exampleRe = regexp.MustCompile(`^[\p{L}\p{N}\p{M}\s.,!?:;"'’\-(){}\[\]<>«»„“”、。？！・…〜ー]+$`)

	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Signup validates and sanitizes a signup form. Names are stored title-cased;
// the email uniqueness check is semantic and stays in the auth service.
func Signup(req *dto.SignupRequest) []FieldError {
	var errs []FieldError

	req.FirstName = apply("firstName", req.FirstName, &errs,
		trim(),
		notEmpty("Must provide your first name."),
		alpha("First name must only contain letters."),
		lengthBetween(1, 50, "First name must be between 1 and 50 characters."),
		properNoun(),
	)
	req.LastName = apply("lastName", req.LastName, &errs,
		trim(),
		notEmpty("Must provide your last name."),
		alpha("Last name must only contain letters."),
		lengthBetween(1, 50, "Last name must be between 1 and 50 characters."),
		properNoun(),
	)
	req.Email = apply("email", req.Email, &errs,
		trim(),
		toLower(),
		email("Must provide a valid email."),
	)
	req.Password = apply("password", req.Password, &errs,
		trim(),
		notEmpty("Must provide a password."),
		lengthBetween(8, 128, "Password must be at least 8 characters long."),
		matches(hasLower, "Password must contain at least one lower case letter."),
		matches(hasUpper, "Password must contain at least one upper case letter."),
		matches(hasDigit, "Password must contain at least one number."),
		matches(hasSpecial, "Password must contain at least one special character."),
	)
	req.ConfirmPassword = apply("confirmPassword", req.ConfirmPassword, &errs,
		trim(),
		notEmpty("Must type password a second time."),
	)
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Passwords do not match."})
	}
	return errs
}

// Login validates a login form. Whether the account exists is semantic and
// stays in the auth service.
func Login(req *dto.LoginRequest) []FieldError {
	var errs []FieldError

	req.Email = apply("email", req.Email, &errs,
		trim(),
		toLower(),
		notEmpty("Must provide your email address."),
		email("Must provide a valid email address."),
	)
	req.Password = apply("password", req.Password, &errs,
		trim(),
		notEmpty("Must enter a password."),
	)
	return errs
}

// LanguagePair validates a two-code language activation form.
func LanguagePair(req *dto.ActivateLanguageRequest) []FieldError {
	var errs []FieldError
	codeMsg := "Must provide a valid country code: KR, EN, FR, HU, ES, JA, ZH"

	req.LangOne = apply("langOne", req.LangOne, &errs,
		trim(),
		notEmpty("Language one cannot be empty."),
		alpha("Language one must be alphabetic letters."),
		lengthBetween(2, 2, "Language one country code must be 2 characters."),
		toUpper(),
		oneOf(models.LanguageCodes, codeMsg),
	)
	req.LangTwo = apply("langTwo", req.LangTwo, &errs,
		trim(),
		notEmpty("Language two cannot be empty."),
		alpha("Language two must be alphabetic letters."),
		lengthBetween(2, 2, "Language two country code must be 2 characters."),
		toUpper(),
		oneOf(models.LanguageCodes, codeMsg),
	)
	if req.LangTwo != "" && req.LangOne == req.LangTwo {
		errs = append(errs, FieldError{Field: "langTwo", Message: "Language two cannot be the same as language one."})
	}
	return errs
}

// CategoryName validates a category name and returns its sanitized form.
// Uniqueness within the (user, pair) scope is semantic and stays in the
// category service.
func CategoryName(name string) (string, []FieldError) {
	var errs []FieldError
	clean := apply("category", name, &errs,
		trim(),
		collapseSpaces(),
		notEmpty("Must enter a name."),
		matches(categoryNameRe, "Must contain only letters, numbers or spaces."),
		lengthBetween(1, 50, "Must be between 1 and 50 characters in length."),
	)
	return clean, errs
}

// WordEntry validates and sanitizes one ingested word in place. The field
// prefix distinguishes entries within a bulk payload.
func WordEntry(entry *dto.WordEntry, prefix string) []FieldError {
	var errs []FieldError

	entry.L1Word = apply(prefix+"l1Word", entry.L1Word, &errs,
		trim(),
		collapseSpaces(),
		notEmpty("You must provide a word."),
		matches(wordRe, "Must only contain letters."),
		lengthBetween(1, 50, "Must be no more than 50 characters long."),
		toLower(),
	)
	entry.L2Word = apply(prefix+"l2Word", entry.L2Word, &errs,
		trim(),
		collapseSpaces(),
		notEmpty("You must provide a word."),
		matches(wordRe, "Must only contain letters."),
		lengthBetween(1, 50, "Must be no more than 50 characters long."),
		toLower(),
	)
	if entry.Example != "" {
		entry.Example = apply(prefix+"example", entry.Example, &errs,
			trim(),
			collapseSpaces(),
			matches(exampleRe, "Example must only contain letters, numbers, spaces, and common punctuation."),
		)
	}
	for i, cat := range entry.Categories {
		entry.Categories[i] = apply(fmt.Sprintf("%scategories[%d]", prefix, i), cat, &errs,
			trim(),
			notEmpty("Category cannot be empty."),
		)
	}
	return errs
}

// Words validates a bulk payload in place, accumulating errors across all
// entries before any of them is persisted.
func Words(entries []dto.WordEntry) []FieldError {
	var errs []FieldError
	for i := range entries {
		errs = append(errs, WordEntry(&entries[i], fmt.Sprintf("words[%d].", i))...)
	}
	return errs
}
