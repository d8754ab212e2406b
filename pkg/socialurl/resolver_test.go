package socialurl_test

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"bizcard/pkg/socialurl"
)

func TestGenerate_ValidGithub_ReturnsProfileURL(t *testing.T) {
	// Act
	got := socialurl.Generate("github", "octocat")

	// Assert
	want := socialurl.Result{
		Platform:   "github",
		Username:   "octocat",
		ProfileURL: "https://github.com/octocat",
		IsValid:    true,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGenerate_LeadingAt_IsStripped(t *testing.T) {
	testCases := []struct {
		name         string
		platform     string
		username     string
		wantUsername string
		wantURL      string
	}{
		{"single at", "twitter", "@jack", "jack", "https://twitter.com/jack"},
		{"many ats", "twitter", "@@@jack", "jack", "https://twitter.com/jack"},
		{"at with padding", "instagram", "  @nasa  ", "nasa", "https://instagram.com/nasa"},
		{"youtube handle", "YouTube", "@mkbhd", "mkbhd", "https://youtube.com/@mkbhd"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := socialurl.Generate(tc.platform, tc.username)

			if !got.IsValid {
				t.Errorf("IsValid = false, want true")
			}
			if got.Username != tc.wantUsername {
				t.Errorf("Username: got %q, want %q", got.Username, tc.wantUsername)
			}
			if got.ProfileURL != tc.wantURL {
				t.Errorf("ProfileURL: got %q, want %q", got.ProfileURL, tc.wantURL)
			}
			if got.Platform != tc.platform {
				t.Errorf("Platform: got %q, want original %q", got.Platform, tc.platform)
			}
		})
	}
}

func TestGenerate_UnsupportedPlatform_EchoesCleanedUsername(t *testing.T) {
	got := socialurl.Generate("myspace", "tom")

	want := socialurl.Result{Platform: "myspace", Username: "tom", ProfileURL: "tom", IsValid: false}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	got = socialurl.Generate("MySpace", " @tom ")
	if got.Username != "tom" || got.ProfileURL != "tom" {
		t.Errorf("unsupported platform should echo cleaned username, got %+v", got)
	}
	if got.Platform != "MySpace" {
		t.Errorf("Platform: got %q, want %q", got.Platform, "MySpace")
	}
}

func TestGenerate_BlankUsername_EchoesOriginal(t *testing.T) {
	got := socialurl.Generate("github", "   ")

	if got.IsValid {
		t.Error("IsValid = true, want false")
	}
	if got.ProfileURL != "   " {
		t.Errorf("ProfileURL: got %q, want original %q", got.ProfileURL, "   ")
	}
	if got.Username != "   " {
		t.Errorf("Username: got %q, want original %q", got.Username, "   ")
	}
}

func TestGenerate_OnlyAtSigns_IsInvalid(t *testing.T) {
	got := socialurl.Generate("twitter", "@@")

	if got.IsValid {
		t.Error("IsValid = true, want false")
	}
	if got.ProfileURL != "@@" {
		t.Errorf("ProfileURL: got %q, want %q", got.ProfileURL, "@@")
	}
}

func TestGenerate_LengthBoundary(t *testing.T) {
	hundred := strings.Repeat("a", socialurl.MaxUsernameLength)
	if got := socialurl.Generate("github", hundred); !got.IsValid {
		t.Errorf("100-character username should be valid, got %+v", got)
	}

	tooLong := strings.Repeat("a", socialurl.MaxUsernameLength+1)
	got := socialurl.Generate("github", tooLong)
	if got.IsValid {
		t.Error("101-character username should be invalid")
	}
	if got.ProfileURL != tooLong {
		t.Error("invalid username should be echoed as ProfileURL")
	}
}

func TestValidateUsername_CountsRunes(t *testing.T) {
	// 100 two-byte runes is 200 bytes but still within the limit.
	multibyte := strings.Repeat("é", socialurl.MaxUsernameLength)
	if !socialurl.ValidateUsername(multibyte) {
		t.Error("100 multibyte runes should be valid")
	}
	if socialurl.ValidateUsername(multibyte + "é") {
		t.Error("101 multibyte runes should be invalid")
	}
	if socialurl.ValidateUsername("") {
		t.Error("empty username should be invalid")
	}
	if !socialurl.ValidateUsername("  x  ") {
		t.Error("padded single character should be valid")
	}
	if socialurl.ValidateUsername("\uFEFF \uFEFF") {
		t.Error("byte order marks alone should be invalid")
	}
}

func TestGenerate_ByteOrderMarkIsWhiteSpace(t *testing.T) {
	got := socialurl.Generate("\uFEFFgithub", "\uFEFF@octocat")

	if !got.IsValid || got.ProfileURL != "https://github.com/octocat" {
		t.Errorf("Generate with BOM padding = %+v", got)
	}
}

func TestNormalizePlatform(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Instagram", "instagram"},
		{"  InstaGram ", "instagram"},
		{"Linked In", "linkedin"},
		{"sound\tcloud\n", "soundcloud"},
		{"   ", ""},
		{"\uFEFFgithub", "github"},
		{"git\u00a0hub\uFEFF", "github"},
		{"git\u0085hub", "git\u0085hub"},
	}

	for _, tc := range testCases {
		if got := socialurl.NormalizePlatform(tc.in); got != tc.want {
			t.Errorf("NormalizePlatform(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanUsername(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"jack", "jack"},
		{"@jack", "jack"},
		{"  @@jack  ", "jack"},
		{"@ jack", "jack"},
		{"ja@ck", "ja@ck"},
		{"jack@", "jack@"},
		{"", ""},
		{"\uFEFF@jack\uFEFF", "jack"},
		{"\u0085jack", "\u0085jack"},
	}

	for _, tc := range testCases {
		if got := socialurl.CleanUsername(tc.in); got != tc.want {
			t.Errorf("CleanUsername(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsPlatformSupported_IgnoresCaseAndWhitespace(t *testing.T) {
	if !socialurl.IsPlatformSupported("  InstaGram ") {
		t.Error(`"  InstaGram " should be supported`)
	}
	if !socialurl.IsPlatformSupported("instagram") {
		t.Error(`"instagram" should be supported`)
	}
	if socialurl.IsPlatformSupported("myspace") {
		t.Error(`"myspace" should not be supported`)
	}
	if socialurl.IsPlatformSupported("") {
		t.Error("empty platform should not be supported")
	}
}

func TestSupportedPlatforms_SortedUniqueFixedLength(t *testing.T) {
	platforms := socialurl.SupportedPlatforms()

	if len(platforms) != 25 {
		t.Errorf("len = %d, want 25", len(platforms))
	}
	if !slices.IsSorted(platforms) {
		t.Errorf("platforms not sorted: %v", platforms)
	}
	if len(slices.Compact(slices.Clone(platforms))) != len(platforms) {
		t.Errorf("platforms contain duplicates: %v", platforms)
	}
	for _, p := range platforms {
		if !socialurl.IsPlatformSupported(p) {
			t.Errorf("listed platform %q is not supported", p)
		}
	}
}

func TestSupportedPlatforms_ReturnsCopy(t *testing.T) {
	first := socialurl.SupportedPlatforms()
	first[0] = "mutated"

	second := socialurl.SupportedPlatforms()
	if second[0] == "mutated" {
		t.Error("mutating the returned slice changed the package table")
	}
}

func TestGenerateMultiple_FiltersEmptyAndPreservesOrder(t *testing.T) {
	entries := []socialurl.Entry{
		{Platform: "github", Username: "octocat"},
		{Platform: "", Username: "ghost"},
		{Platform: "twitter", Username: ""},
		{Platform: "myspace", Username: "tom"},
		{Platform: "linkedin", Username: "@satya"},
		{Platform: "github", Username: "   "},
	}

	got := socialurl.GenerateMultiple(entries)

	wantURLs := []string{
		"https://github.com/octocat",
		"tom",
		"https://linkedin.com/in/satya",
		"   ",
	}
	if len(got) != len(wantURLs) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(wantURLs), got)
	}
	for i, want := range wantURLs {
		if got[i].ProfileURL != want {
			t.Errorf("result[%d].ProfileURL = %q, want %q", i, got[i].ProfileURL, want)
		}
	}
}

func TestGenerateMultiple_NilInput_ReturnsEmptySlice(t *testing.T) {
	got := socialurl.GenerateMultiple(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestPrefix_KnownPlatforms(t *testing.T) {
	testCases := map[string]string{
		"skype":    "skype:",
		"whatsapp": "https://wa.me/",
		"Spotify":  "https://open.spotify.com/user/",
		"x":        "https://x.com/",
	}
	for platform, want := range testCases {
		got, ok := socialurl.Prefix(platform)
		if !ok || got != want {
			t.Errorf("Prefix(%q) = %q, %v; want %q, true", platform, got, ok, want)
		}
	}
}

func TestGenerate_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := socialurl.Generate("GitHub", "@octocat"); got.ProfileURL != "https://github.com/octocat" {
					t.Errorf("unexpected result %+v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func FuzzGenerate(f *testing.F) {
	seeds := [][2]string{
		{"github", "octocat"},
		{"", ""},
		{"  InstaGram ", "@@@"},
		{"myspace", "tom"},
		{"twitter", "@ jack"},
		{"ユーチューブ", "名前"},
		{"\x00", "\xff\xfe"},
	}
	for _, s := range seeds {
		f.Add(s[0], s[1])
	}

	f.Fuzz(func(t *testing.T, platform, username string) {
		got := socialurl.Generate(platform, username)

		if got.Platform != platform {
			t.Errorf("Platform %q not echoed, got %q", platform, got.Platform)
		}
		if !got.IsValid && got.ProfileURL != got.Username {
			t.Errorf("invalid result must echo username as ProfileURL: %+v", got)
		}
		if got.IsValid && !socialurl.IsPlatformSupported(platform) {
			t.Errorf("valid result for unsupported platform %q", platform)
		}

		once := socialurl.CleanUsername(username)
		if twice := socialurl.CleanUsername(once); twice != once {
			t.Errorf("CleanUsername not idempotent: %q -> %q -> %q", username, once, twice)
		}
	})
}
