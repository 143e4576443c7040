package leaders

import "context"

// Leader represents a national leader as listed by the directory API,
// optionally enriched with facts extracted from the Wikipedia article.
type Leader struct {
	ID           string  `json:"id" yaml:"id"`
	FirstName    string  `json:"first_name" yaml:"first_name"`
	LastName     string  `json:"last_name" yaml:"last_name"`
	BirthDate    string  `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	DeathDate    *string `json:"death_date" yaml:"death_date"`
	PlaceOfBirth string  `json:"place_of_birth,omitempty" yaml:"place_of_birth,omitempty"`
	WikipediaURL string  `json:"wikipedia_url" yaml:"wikipedia_url"`
	StartMandate string  `json:"start_mandate,omitempty" yaml:"start_mandate,omitempty"`
	EndMandate   *string `json:"end_mandate" yaml:"end_mandate"`

	// Country is the directory country code. The dataset is keyed by it,
	// so it is not repeated inside the serialized record.
	Country string `json:"-" yaml:"-"`

	FirstWikiPara   string           `json:"first_wiki_para,omitempty" yaml:"first_wiki_para,omitempty"`
	PersonalDetails *PersonalDetails `json:"personal_details,omitempty" yaml:"personal_details,omitempty"`
}

// Name returns the leader's display name.
func (l *Leader) Name() string {
	switch {
	case l.FirstName == "":
		return l.LastName
	case l.LastName == "":
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// Validate returns an error if the leader cannot be enriched.
func (l *Leader) Validate() error {
	if l.WikipediaURL == "" {
		return Errorf(EINVALID, "leader %q has no wikipedia URL", l.Name())
	}
	return nil
}

// Clone returns a deep copy of the leader.
func (l *Leader) Clone() *Leader {
	other := *l
	if l.DeathDate != nil {
		v := *l.DeathDate
		other.DeathDate = &v
	}
	if l.EndMandate != nil {
		v := *l.EndMandate
		other.EndMandate = &v
	}
	if l.PersonalDetails != nil {
		other.PersonalDetails = l.PersonalDetails.Clone()
	}
	return &other
}

// Dataset maps a country code to its leaders in directory order.
type Dataset map[string][]*Leader

// Len returns the total number of leaders across all countries.
func (d Dataset) Len() int {
	var n int
	for _, list := range d {
		n += len(list)
	}
	return n
}

// Directory lists countries and their leaders.
type Directory interface {
	// Status checks that the directory is reachable.
	Status(ctx context.Context) error

	// Countries returns the country codes known to the directory.
	Countries(ctx context.Context) ([]string, error)

	// Leaders returns the leaders of a country in directory order.
	// The returned records have Country set.
	Leaders(ctx context.Context, country string) ([]*Leader, error)
}

// DatasetWriter persists an enriched dataset.
type DatasetWriter interface {
	WriteDataset(ctx context.Context, dataset Dataset) error
}

// MultiWriter returns a DatasetWriter that writes to each writer in turn,
// stopping at the first error.
func MultiWriter(writers ...DatasetWriter) DatasetWriter {
	return multiWriter(writers)
}

type multiWriter []DatasetWriter

func (m multiWriter) WriteDataset(ctx context.Context, dataset Dataset) error {
	for _, w := range m {
		if err := w.WriteDataset(ctx, dataset); err != nil {
			return err
		}
	}
	return nil
}
