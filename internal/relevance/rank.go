package relevance

import "sort"

// RankSections sorts scored sections across all documents jointly by
// composite score descending, breaking ties by higher job score, earlier
// position, document input order, then page. Ranks are assigned 1-based
// after sorting and the list is trimmed to topN.
func RankSections(sections []ScoredSection, topN int) []ScoredSection {
	ranked := make([]ScoredSection, len(sections))
	copy(ranked, sections)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.JobScore != b.JobScore {
			return a.JobScore > b.JobScore
		}
		if a.PositionScore != b.PositionScore {
			return a.PositionScore > b.PositionScore
		}
		if a.DocOrder != b.DocOrder {
			return a.DocOrder < b.DocOrder
		}
		if a.Section.PageStart != b.Section.PageStart {
			return a.Section.PageStart < b.Section.PageStart
		}
		return a.Ordinal < b.Ordinal
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// RankPassages orders passages mined from the selected top sections,
// assigns 1-based ranks, and trims to topN. The tie chain mirrors the
// section chain with the in-section index as the final discriminator.
func RankPassages(passages []ScoredPassage, topN int) []ScoredPassage {
	ranked := make([]ScoredPassage, len(passages))
	copy(ranked, passages)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.JobScore != b.JobScore {
			return a.JobScore > b.JobScore
		}
		if a.DocOrder != b.DocOrder {
			return a.DocOrder < b.DocOrder
		}
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.SectionOrd != b.SectionOrd {
			return a.SectionOrd < b.SectionOrd
		}
		return a.Index < b.Index
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
