package domain

import "time"

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedCategories returns the static category list.
func SeedCategories() []Category {
	return []Category{
		{ID: "cat-1", Name: "Computer Science"},
		{ID: "cat-2", Name: "Business Administration"},
		{ID: "cat-3", Name: "Engineering"},
		{ID: "cat-4", Name: "Medicine"},
		{ID: "cat-5", Name: "Law"},
		{ID: "cat-6", Name: "Education"},
	}
}

// SeedProjects returns a fresh copy of the demo catalog.
func SeedProjects() []Project {
	return []Project{
		{
			ID:          "proj-1",
			Title:       "Database Management Systems",
			Description: "A comprehensive study on modern database management systems with practical implementations.",
			Price:       5000,
			Category:    "cat-1",
			Featured:    true,
			Chapters: []Chapter{
				{ID: "chap-1-1", Title: "Introduction to Database Systems", Content: "This chapter introduces the fundamental concepts of database systems, their evolution, and importance in modern computing.\n\nA database is an organized collection of data, generally stored and accessed electronically from a computer system. The database management system (DBMS) is the software that interacts with end users, applications, and the database itself to capture and analyze the data."},
				{ID: "chap-1-2", Title: "Data Models and Entity-Relationship Diagrams", Content: "Entity-relationship modelling describes the things a system stores and how they relate.\n\nEntities become tables, attributes become columns and relationships become foreign keys or join tables."},
				{ID: "chap-1-3", Title: "SQL Fundamentals", Content: "SQL is the declarative language used to define, query and modify relational data.\n\nThis chapter covers SELECT, INSERT, UPDATE and DELETE together with joins, grouping and subqueries."},
				{ID: "chap-1-4", Title: "Database Normalization", Content: "Normalization removes redundancy by splitting relations according to their functional dependencies.\n\nThe first three normal forms and Boyce-Codd normal form are worked through with examples."},
			},
			CreatedAt: mustTime("2023-05-15T10:30:00Z"),
		},
		{
			ID:          "proj-2",
			Title:       "Artificial Intelligence and Machine Learning",
			Description: "Exploring the cutting-edge technologies in AI and ML with case studies and implementations.",
			Price:       7500,
			Category:    "cat-1",
			Featured:    true,
			Chapters: []Chapter{
				{ID: "chap-2-1", Title: "Introduction to AI", Content: "This chapter provides an overview of artificial intelligence, its history, and its current applications in various industries.\n\nArtificial intelligence (AI) is intelligence demonstrated by machines, as opposed to the natural intelligence displayed by animals including humans."},
				{ID: "chap-2-2", Title: "Machine Learning Fundamentals", Content: "Machine learning builds models from data rather than explicit rules.\n\nSupervised, unsupervised and reinforcement learning are compared on small case studies."},
			},
			CreatedAt: mustTime("2023-06-20T14:15:00Z"),
		},
		{
			ID:          "proj-3",
			Title:       "Business Strategy in Emerging Markets",
			Description: "Analysis of business strategies for companies operating in emerging market economies.",
			Price:       6000,
			Category:    "cat-2",
			Featured:    false,
			Chapters: []Chapter{
				{ID: "chap-3-1", Title: "Characteristics of Emerging Markets", Content: "This chapter examines the defining characteristics of emerging markets and how they differ from developed economies.\n\nAn emerging market is a market that has some characteristics of a developed market, but does not fully meet its standards."},
				{ID: "chap-3-2", Title: "Market Entry Strategies", Content: "Exporting, licensing, joint ventures and wholly owned subsidiaries trade control against risk.\n\nThe chapter closes with entry case studies from West African consumer markets."},
			},
			CreatedAt: mustTime("2023-07-05T09:45:00Z"),
		},
		{
			ID:          "proj-4",
			Title:       "Civil Engineering Structures",
			Description: "Detailed analysis of civil engineering structures including bridges, dams, and high-rise buildings.",
			Price:       8000,
			Category:    "cat-3",
			Featured:    false,
			Chapters: []Chapter{
				{ID: "chap-4-1", Title: "Fundamentals of Structural Analysis", Content: "This chapter covers the basic principles of structural analysis in civil engineering.\n\nStructural analysis is the determination of the effects of loads on physical structures and their components."},
				{ID: "chap-4-2", Title: "Bridge Design", Content: "Beam, arch, truss and suspension bridges carry load along different paths.\n\nSpan length, soil conditions and budget decide which form is chosen."},
			},
			CreatedAt: mustTime("2023-08-12T16:20:00Z"),
		},
		{
			ID:          "proj-5",
			Title:       "Medical Ethics and Law",
			Description: "Examination of ethical and legal issues in medical practice and healthcare management.",
			Price:       5500,
			Category:    "cat-4",
			Featured:    true,
			Chapters: []Chapter{
				{ID: "chap-5-1", Title: "Principles of Medical Ethics", Content: "This chapter introduces the fundamental principles of medical ethics that guide healthcare professionals.\n\nThe four main moral commitments are respect for autonomy, beneficence, non-maleficence, and justice."},
				{ID: "chap-5-2", Title: "Legal Framework in Healthcare", Content: "Consent, confidentiality and negligence form the legal core of clinical practice.\n\nThe chapter maps each duty to the statutes and case law that enforce it."},
			},
			CreatedAt: mustTime("2023-09-03T11:10:00Z"),
		},
	}
}
