package course

import (
	"context"
	"database/sql"
)

// Seed data is a pure content table. Scoring and unlock logic never
// look at it; swapping course content must not touch any algorithm.

type seedOption struct {
	Text    string
	Correct bool
}

type seedQuestion struct {
	Text    string
	Options []seedOption
}

type seedModule struct {
	Title     string
	YouTubeID string
	Questions []seedQuestion
}

type seedCourse struct {
	Slug        string
	Name        string
	Description string
	Modules     []seedModule
}

var defaultCourse = seedCourse{
	Slug:        "cursor",
	Name:        "Parcours Cursor",
	Description: "Maîtrisez Cursor, l'IDE propulsé par l'IA",
	Modules: []seedModule{
		{
			Title:     "Module 1 — Introduction à Cursor",
			YouTubeID: "IccjZDV93lw",
			Questions: []seedQuestion{
				{
					Text: "Qu'est-ce que Cursor?",
					Options: []seedOption{
						{Text: "Un simple éditeur de texte"},
						{Text: "Un IDE avec IA intégrée pour le développement", Correct: true},
						{Text: "Un terminal avancé"},
					},
				},
				{
					Text: "Quel est le principal avantage de Cursor par rapport aux autres IDE?",
					Options: []seedOption{
						{Text: "Il est gratuit"},
						{Text: "Il intègre des modèles d'IA pour assister le développement", Correct: true},
						{Text: "Il consomme moins de RAM"},
					},
				},
				{
					Text: "Cursor est basé sur quel éditeur de code?",
					Options: []seedOption{
						{Text: "Sublime Text"},
						{Text: "Visual Studio Code (VS Code)", Correct: true},
						{Text: "Atom"},
					},
				},
			},
		},
		{
			Title:     "Module 2 — Hallucinations des LLM dans Cursor",
			YouTubeID: "IccjZDV93lw",
			Questions: []seedQuestion{
				{
					Text: "Qu'est-ce qu'une hallucination d'un LLM dans Cursor?",
					Options: []seedOption{
						{Text: "Un bug visuel dans l'interface"},
						{Text: "Quand l'IA génère du code incorrect ou invente des informations", Correct: true},
						{Text: "Un problème de connexion réseau"},
					},
				},
				{
					Text: "Comment réduire les hallucinations dans Cursor?",
					Options: []seedOption{
						{Text: "Désactiver l'IA complètement"},
						{Text: "Fournir un contexte clair et vérifier les suggestions de l'IA", Correct: true},
						{Text: "Utiliser uniquement le mode offline"},
					},
				},
				{
					Text: "Que faire si Cursor génère du code erroné?",
					Options: []seedOption{
						{Text: "L'utiliser quand même sans vérifier"},
						{Text: "Vérifier, corriger et donner un retour pour améliorer le contexte", Correct: true},
						{Text: "Redémarrer l'ordinateur"},
					},
				},
			},
		},
		{
			Title:     "Module 3 — Les Tools dans Cursor",
			YouTubeID: "byR5YVesMeg",
			Questions: []seedQuestion{
				{
					Text: `Que sont les "tools" dans Cursor?`,
					Options: []seedOption{
						{Text: "Des extensions visuelles uniquement"},
						{Text: "Des fonctionnalités IA qui peuvent lire/éditer des fichiers et exécuter des commandes", Correct: true},
						{Text: "Des raccourcis clavier personnalisés"},
					},
				},
				{
					Text: "Quel est l'avantage des tools dans Cursor?",
					Options: []seedOption{
						{Text: "Ils rendent l'interface plus jolie"},
						{Text: "Ils permettent à l'IA d'interagir avec le projet de manière autonome", Correct: true},
						{Text: "Ils accélèrent uniquement la compilation"},
					},
				},
				{
					Text: "Que peut faire un tool dans Cursor?",
					Options: []seedOption{
						{Text: "Uniquement afficher du texte"},
						{Text: "Lire des fichiers, exécuter des commandes, modifier du code", Correct: true},
						{Text: "Changer uniquement les couleurs du thème"},
					},
				},
			},
		},
	},
}

// SeedIfEmpty inserts the default course content when the courses
// table has no rows. Safe to call on every startup.
func SeedIfEmpty(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return seed(ctx, db, defaultCourse)
}

func seed(ctx context.Context, db *sql.DB, c seedCourse) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var courseID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO courses (slug, name, description) VALUES ($1,$2,$3) RETURNING id`,
		c.Slug, c.Name, c.Description).Scan(&courseID); err != nil {
		return err
	}
	for mi, m := range c.Modules {
		var moduleID int64
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO modules (course_id, ord, title, youtube_id) VALUES ($1,$2,$3,$4) RETURNING id`,
			courseID, mi+1, m.Title, m.YouTubeID).Scan(&moduleID); err != nil {
			return err
		}
		for qi, q := range m.Questions {
			var questionID int64
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO questions (module_id, ord, text) VALUES ($1,$2,$3) RETURNING id`,
				moduleID, qi+1, q.Text).Scan(&questionID); err != nil {
				return err
			}
			for oi, o := range q.Options {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO options (question_id, ord, text, is_correct) VALUES ($1,$2,$3,$4)`,
					questionID, oi+1, o.Text, o.Correct); err != nil {
					return err
				}
			}
		}
	}
	return tx.Commit()
}
