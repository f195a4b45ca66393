package types

// Source identifies one external origin of job data.
type Source string

const (
	// SourceSerper is the keyed search-engine API source
	SourceSerper Source = "serper"
	// SourceCompanyCareers is the company career-page source
	SourceCompanyCareers Source = "company_careers"
	// SourceRemoteOK is the RemoteOK public JSON API source
	SourceRemoteOK Source = "remoteok"
	// SourceWorkAtAStartup is the Y Combinator jobs source
	SourceWorkAtAStartup Source = "workatastartup"
	// SourceWeWorkRemotely is the We Work Remotely listing source
	SourceWeWorkRemotely Source = "weworkremotely"
	// SourceWellfound is the Wellfound startup jobs source
	SourceWellfound Source = "wellfound"
	// SourceHNJobs is the Hacker News jobs page source
	SourceHNJobs Source = "hnjobs"
	// SourceRemoteCo is the Remote.co listing source
	SourceRemoteCo Source = "remoteco"
)

// RawPosting is a candidate job posting as produced by a source adapter,
// before normalization. Instances live only within a single adapter call.
type RawPosting struct {
	Source      Source   `json:"source"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Experience  string   `json:"experience"`
	Skills      []string `json:"skills"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Salary      string   `json:"salary,omitempty"`
}

// NormalizedPosting is the canonical posting schema. It is immutable after
// creation; every field has a documented fallback applied by the normalizer.
type NormalizedPosting struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Experience  string   `json:"experience"`
	Skills      []string `json:"skills_required"`
	ApplyURL    string   `json:"apply_url"`
	Description string   `json:"description,omitempty"`
	Source      Source   `json:"source"`
}
