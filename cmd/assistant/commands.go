package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aarush-luthra/Government-Scheme/internal/db"
	"github.com/aarush-luthra/Government-Scheme/internal/i18n"
	"github.com/aarush-luthra/Government-Scheme/internal/models"
	"github.com/aarush-luthra/Government-Scheme/internal/services"
	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	}
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.Auth.Open(services.FormSignin, false)
			a.Auth.Email = email
			a.Auth.Password = password
			u, err := a.Auth.SubmitSignIn(cmd.Context())
			if err != nil {
				return loginError(a.Auth.FieldErrors(), err)
			}
			a.SetUser(u)
			saveSession(a.Vault, u)
			fmt.Printf("Signed in as %s\n", u.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd() *cobra.Command {
	var name, email, password string
	var acceptTerms bool
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			auth := a.Auth
			auth.Open(services.FormSignup, false)
			auth.Name = name
			if !auth.Next() {
				return loginError(auth.FieldErrors(), nil)
			}
			auth.Email = email
			auth.Password = password
			if !auth.Next() {
				return loginError(auth.FieldErrors(), nil)
			}
			auth.ConfirmPassword = password
			auth.TermsAccepted = acceptTerms
			u, err := auth.SubmitSignUp(cmd.Context())
			if err != nil {
				return loginError(auth.FieldErrors(), err)
			}
			a.SetUser(u)
			saveSession(a.Vault, u)
			fmt.Printf("Account created. Signed in as %s\n", u.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&acceptTerms, "accept-terms", false, "agree to the Terms of Service")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.Logout(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			me, err := a.Client.Me(cmd.Context())
			if err == nil && me.IsLoggedIn {
				fmt.Printf("Signed in as %s (%s)\n", me.UserName, me.UserID)
				return nil
			}
			if s, _ := a.Vault.Load(); s != nil {
				fmt.Printf("Saved session for %s (saved %s, client %s)\n",
					s.User.Name, s.SavedAt.Format(time.RFC3339), s.ClientID)
				return nil
			}
			fmt.Println("Not signed in.")
			return nil
		},
	}
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 0 {
				current := a.Store.Language()
				for _, code := range utils.SupportedLanguages() {
					marker := "  "
					if code == current {
						marker = "* "
					}
					fmt.Printf("%s%-6s %s\n", marker, code, utils.LanguageDisplayName(code))
				}
				return nil
			}
			code := args[0]
			if err := a.SelectLanguage(cmd.Context(), code); err != nil {
				return err
			}
			fmt.Printf("Language set to %s (%s)\n", code, utils.LanguageDisplayName(code))
			return nil
		},
	}
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your scheme-finder profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p := a.Store.Profile()
			if p == nil {
				fmt.Println("No profile saved yet. Run `assistant profile edit` after signing in.")
				return nil
			}
			if p.Skipped {
				fmt.Println("Onboarding was skipped. Run `assistant profile edit` to fill it in.")
			}
			printProfile(p)
			return nil
		},
	}
	cmd.AddCommand(newProfileEditCmd(), newProfileSkipCmd())
	return cmd
}

func newProfileSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip onboarding, keeping only the language preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.SkipOnboarding()
			fmt.Println("Onboarding skipped. You can fill in your profile later with `assistant profile edit`.")
			return nil
		},
	}
}

func newProfileEditCmd() *cobra.Command {
	var (
		gender, state, area, category, employment string
		age, annualIncome, familyIncome           string
		disabled, minority, student, govtEmployee bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update the server-side profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Scheme.OpenForEdit(cmd.Context()); err != nil {
				return err
			}
			d := &a.Scheme.Data
			setIfChanged(cmd, "gender", &d.Gender, gender)
			setIfChanged(cmd, "state", &d.State, state)
			setIfChanged(cmd, "area", &d.Area, area)
			setIfChanged(cmd, "category", &d.Category, category)
			setIfChanged(cmd, "employment", &d.EmploymentStatus, employment)
			setBoolIfChanged(cmd, "disabled", &d.IsDisabled, disabled)
			setBoolIfChanged(cmd, "minority", &d.IsMinority, minority)
			setBoolIfChanged(cmd, "student", &d.IsStudent, student)
			setBoolIfChanged(cmd, "govt-employee", &d.IsGovtEmployee, govtEmployee)
			if cmd.Flags().Changed("age") {
				if err := a.Scheme.SetAge(age); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("annual-income") {
				if err := a.Scheme.SetAnnualIncome(annualIncome); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("family-income") {
				if err := a.Scheme.SetFamilyIncome(familyIncome); err != nil {
					return err
				}
			}

			res, err := a.Scheme.Submit(cmd.Context())
			if err != nil {
				if msg := firstError(a.Scheme.FieldErrors()); msg != "" {
					return fmt.Errorf("%s", msg)
				}
				return err
			}
			if res.Message != "" {
				fmt.Println(res.Message)
			} else {
				fmt.Println("Profile updated.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	cmd.Flags().StringVar(&age, "age", "", "age in years")
	cmd.Flags().StringVar(&state, "state", "", "state of residence")
	cmd.Flags().StringVar(&area, "area", "", "area type (urban/rural)")
	cmd.Flags().StringVar(&category, "category", "", "social category")
	cmd.Flags().StringVar(&employment, "employment", "", "employment status")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "person with disability")
	cmd.Flags().BoolVar(&minority, "minority", false, "minority community member")
	cmd.Flags().BoolVar(&student, "student", false, "currently a student")
	cmd.Flags().BoolVar(&govtEmployee, "govt-employee", false, "government employee")
	cmd.Flags().StringVar(&annualIncome, "annual-income", "", "annual income in rupees")
	cmd.Flags().StringVar(&familyIncome, "family-income", "", "family income in rupees")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <document>",
		Short: "Verify your profile against a scanned document",
		Long: "Upload an ID document (PNG, JPEG or PDF, up to 5 MB) and compare the\n" +
			"fields the OCR service extracts against your saved profile.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			contentType := mime.TypeByExtension(filepath.Ext(path))
			if err := a.Verify.SelectFile(filepath.Base(path), contentType, info.Size()); err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := a.Verify.Upload(cmd.Context(), f, enteredFromProfile(a.Store.Profile())); err != nil {
				return err
			}
			fmt.Println(a.Verify.Summary())
			return nil
		},
	}
}

// enteredFromProfile maps the locally stored profile onto the form shape the
// comparison works with. A missing profile compares everything as unanswered.
func enteredFromProfile(p *models.UserProfile) *models.SchemeFormData {
	d := &models.SchemeFormData{}
	if p == nil {
		return d
	}
	d.FullName = p.FullName
	d.Age = p.Age
	d.AnnualIncome = p.Income
	if p.Gender != "" {
		d.Gender = &p.Gender
	}
	if p.State != "" {
		d.State = &p.State
	}
	if p.Category != "" {
		d.Category = &p.Category
	}
	return d
}

func printProfile(p *models.UserProfile) {
	lang := p.Language
	if lang == "" {
		lang = utils.SourceLanguage
	}
	fmt.Printf("Name:       %s\n", p.FullName)
	if p.Age != nil {
		fmt.Printf("Age:        %s\n", i18n.FormatInt(lang, *p.Age))
	}
	if p.Gender != "" {
		fmt.Printf("Gender:     %s\n", p.Gender)
	}
	if p.State != "" {
		fmt.Printf("State:      %s\n", p.State)
	}
	if p.Category != "" {
		fmt.Printf("Category:   %s\n", p.Category)
	}
	if p.Income != nil {
		fmt.Printf("Income:     %s\n", i18n.FormatAmount(lang, *p.Income))
	}
	if p.Occupation != "" {
		fmt.Printf("Occupation: %s\n", p.Occupation)
	}
	fmt.Printf("Language:   %s\n", lang)
}

func saveSession(vault *db.SessionVault, u *models.AuthUser) {
	_ = vault.Save(&db.StoredSession{User: *u, SavedAt: time.Now().UTC()})
}

func setIfChanged(cmd *cobra.Command, flag string, dst **string, val string) {
	if cmd.Flags().Changed(flag) {
		v := strings.TrimSpace(val)
		*dst = &v
	}
}

func setBoolIfChanged(cmd *cobra.Command, flag string, dst **bool, val bool) {
	if cmd.Flags().Changed(flag) {
		v := val
		*dst = &v
	}
}

func loginError(fieldErrors map[string]string, err error) error {
	if msg := firstError(fieldErrors); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("validation failed")
}

func firstError(errs map[string]string) string {
	for _, v := range errs {
		return v
	}
	return ""
}
