package brand

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AliasEntry maps one generic drug to the brand-name substrings it is sold
// under. Composition is the canonical composition text for the generic,
// fed through the composition normalizer when locating by composition.
type AliasEntry struct {
	Generic     string   `yaml:"generic" json:"generic"`
	Composition string   `yaml:"composition,omitempty" json:"composition,omitempty"`
	Aliases     []string `yaml:"aliases" json:"aliases"`
}

// AliasTable is an ordered list of entries. Order is part of the contract:
// earlier entries win on ambiguous substrings, so base generics must be
// registered before their combination drugs. The table is loaded once at
// startup and never mutated.
type AliasTable struct {
	Entries []AliasEntry `yaml:"entries" json:"entries"`
}

func Load(path string) (AliasTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultTable(), err
	}
	var table AliasTable
	if err := yaml.Unmarshal(content, &table); err != nil {
		return AliasTable{}, err
	}
	if len(table.Entries) == 0 {
		return AliasTable{}, fmt.Errorf("brand alias table empty")
	}
	return table, nil
}

// DefaultTable is the compiled-in formulary alias data used when no alias
// file is configured. Base generics come before combination drugs.
func DefaultTable() AliasTable {
	return AliasTable{Entries: []AliasEntry{
		{
			Generic:     "paracetamol",
			Composition: "paracetamol",
			Aliases:     []string{"dolo", "crocin", "calpol", "tylenol", "metacin", "pacimol"},
		},
		{
			Generic:     "amoxicillin",
			Composition: "amoxicillin",
			Aliases:     []string{"amoxil", "novamox", "mox"},
		},
		{
			Generic:     "amoxicillin + clavulanic acid",
			Composition: "amoxicillin + clavulanic acid",
			Aliases:     []string{"augmentin", "clavam", "moxikind-cv", "moxclav"},
		},
		{
			Generic:     "ibuprofen",
			Composition: "ibuprofen",
			Aliases:     []string{"brufen", "advil", "nurofen", "ibugesic"},
		},
		{
			Generic:     "azithromycin",
			Composition: "azithromycin",
			Aliases:     []string{"azithral", "zithromax", "azee", "azicip"},
		},
		{
			Generic:     "cetirizine",
			Composition: "cetirizine",
			Aliases:     []string{"zyrtec", "cetzine", "alerid", "okacet"},
		},
		{
			Generic:     "omeprazole",
			Composition: "omeprazole",
			Aliases:     []string{"prilosec", "omez", "ocid"},
		},
		{
			Generic:     "pantoprazole",
			Composition: "pantoprazole",
			Aliases:     []string{"pantocid", "pantodac", "pantop"},
		},
		{
			Generic:     "metformin",
			Composition: "metformin",
			Aliases:     []string{"glycomet", "glucophage", "gluformin"},
		},
		{
			Generic:     "atorvastatin",
			Composition: "atorvastatin",
			Aliases:     []string{"lipitor", "atorva", "storvas"},
		},
		{
			Generic:     "amlodipine",
			Composition: "amlodipine",
			Aliases:     []string{"norvasc", "amlong", "amlip"},
		},
		{
			Generic:     "cefixime",
			Composition: "cefixime",
			Aliases:     []string{"zifi", "taxim-o", "cefspan"},
		},
		{
			Generic:     "diclofenac",
			Composition: "diclofenac",
			Aliases:     []string{"voveran", "voltaren", "diclomol"},
		},
		{
			Generic:     "ranitidine",
			Composition: "ranitidine",
			Aliases:     []string{"rantac", "zinetac", "aciloc"},
		},
		{
			Generic:     "montelukast",
			Composition: "montelukast",
			Aliases:     []string{"montair", "singulair", "montek"},
		},
	}}
}
