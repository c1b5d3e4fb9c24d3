// Package catalog holds the sample data shipped with MyAgri: the starter
// activities and the help center content. Every call returns fresh copies.
package catalog

import (
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/query"
)

// Activities returns the starter activity list, most recent first.
func Activities() []core.Record {
	return clone([]core.Record{
		{
			ID:       "1",
			Kind:     core.KindActivity,
			Title:    "Inspection des cultures de maïs",
			Body:     "Vérifier l'état de santé des plants de maïs dans le secteur Nord",
			Category: core.CategoryTask,
			Priority: core.PriorityHigh,
			Status:   core.StatusPending,
			Date:     "2025-04-15",
			Tags:     []string{"maïs", "inspection", "nord"},
		},
		{
			ID:       "2",
			Kind:     core.KindActivity,
			Title:    "Commander des semences pour la saison prochaine",
			Body:     "Effectuer la commande des semences de blé et d'orge pour la prochaine saison",
			Category: core.CategoryTask,
			Priority: core.PriorityMedium,
			Status:   core.StatusCompleted,
			Date:     "2025-04-10",
			Tags:     []string{"commande", "semences", "blé", "orge"},
		},
		{
			ID:       "3",
			Kind:     core.KindActivity,
			Title:    "Formation sur les nouvelles techniques d'irrigation",
			Body:     "Participer à la formation organisée par la chambre d'agriculture sur les techniques d'irrigation économes en eau",
			Category: core.CategoryEvent,
			Priority: core.PriorityMedium,
			Status:   core.StatusPending,
			Date:     "2025-04-20",
			Tags:     []string{"formation", "irrigation", "économie d'eau"},
		},
		{
			ID:       "4",
			Kind:     core.KindActivity,
			Title:    "Préparation du sol pour les plantations de printemps",
			Body:     "Labourer et préparer le terrain du secteur Est pour les plantations de printemps",
			Category: core.CategoryTask,
			Priority: core.PriorityHigh,
			Status:   core.StatusInProgress,
			Date:     "2025-04-12",
			Tags:     []string{"labour", "préparation", "printemps"},
		},
		{
			ID:       "5",
			Kind:     core.KindActivity,
			Title:    "Note sur l'apparition de taches sur les feuilles de tomates",
			Body:     "Observation de taches brunes sur les feuilles de tomates de la serre 2. À surveiller attentivement.",
			Category: core.CategoryNote,
			Priority: core.PriorityHigh,
			Status:   core.StatusPending,
			Date:     "2025-04-13",
			Tags:     []string{"tomates", "maladie", "observation"},
		},
	})
}

// FAQ returns the help center questions. Title is the question, Body the answer.
func FAQ() []core.Record {
	return clone([]core.Record{
		faq("faq-1", core.CategoryAnalyse,
			"Comment démarrer une analyse d'image de culture ?",
			"Pour commencer une analyse, accédez à la page 'Analyse' depuis le menu principal, puis cliquez sur le bouton 'Nouvelle analyse'. Vous pourrez ensuite télécharger une photo de votre culture et suivre les instructions à l'écran pour obtenir un diagnostic."),
		faq("faq-2", core.CategoryAnalyse,
			"Quels formats d'image sont pris en charge ?",
			"MyAgri prend en charge les formats d'image courants : JPG, PNG et HEIC. Pour de meilleurs résultats, utilisez des images bien éclairées avec une résolution d'au moins 1280x720 pixels."),
		faq("faq-3", core.CategoryCompte,
			"Comment modifier mon profil utilisateur ?",
			"Vous pouvez modifier votre profil en accédant à la page 'Paramètres' depuis le menu principal, puis en sélectionnant l'onglet 'Profil'. Vous pourrez y mettre à jour vos informations personnelles et les détails de votre exploitation."),
		faq("faq-4", core.CategoryAnalyse,
			"Comment interpréter les résultats d'une analyse ?",
			"Les résultats d'analyse affichent les problèmes potentiels détectés dans votre culture, le niveau de confiance de la détection, ainsi que des recommandations de traitement. Les zones problématiques sont mises en évidence sur l'image avec un code couleur indiquant la gravité."),
		faq("faq-5", core.CategoryCompte,
			"Quelle est la différence entre un compte gratuit et un compte premium ?",
			"Un compte gratuit vous permet d'effectuer jusqu'à 5 analyses par mois avec des fonctionnalités de base. Un compte premium offre des analyses illimitées, des recommandations personnalisées plus détaillées, l'historique complet des analyses et un accès prioritaire à l'assistance client."),
		faq("faq-6", core.CategoryOutils,
			"Comment fonctionne l'outil de simulation de culture ?",
			"L'outil de simulation vous permet de visualiser l'évolution potentielle de vos cultures sur une période de 30 jours en fonction de différents paramètres. Vous pouvez ajuster la vitesse de la simulation et observer l'impact de différents facteurs comme les parasites et les nutriments sur votre rendement."),
		faq("faq-7", core.CategorySupport,
			"Comment contacter le support technique ?",
			"Vous pouvez contacter notre équipe de support technique en utilisant le formulaire de contact dans l'onglet 'Contact' de cette page d'aide. Nous nous efforçons de répondre à toutes les demandes dans un délai de 24 à 48 heures. Les utilisateurs premium bénéficient d'une assistance prioritaire."),
		faq("faq-8", core.CategoryTechnique,
			"Est-ce que MyAgri fonctionne hors ligne ?",
			"L'application principale nécessite une connexion internet pour effectuer des analyses et accéder à vos données. Cependant, les utilisateurs premium peuvent télécharger certaines informations pour une consultation hors ligne et synchroniser les nouvelles analyses une fois la connexion rétablie."),
	})
}

// Resources returns the help center guides, articles, videos and tools.
// Title and Body hold the title and description.
func Resources() []core.Record {
	return clone([]core.Record{
		resource("res-1", core.CategoryGuide,
			"Guide complet de l'analyse d'images",
			"Apprenez à prendre des photos optimales pour obtenir les meilleurs résultats d'analyse."),
		resource("res-2", core.CategoryArticle,
			"Maladies communes des céréales",
			"Découvrez les parasites et maladies les plus fréquents qui touchent les cultures céréalières."),
		resource("res-3", core.CategoryGuide,
			"Optimisation des traitements phytosanitaires",
			"Stratégies pour réduire l'utilisation de produits tout en maintenant la santé des cultures."),
		resource("res-4", core.CategoryVideo,
			"Tutoriel vidéo : Utiliser l'outil de simulation",
			"Apprenez à tirer le meilleur parti de l'outil de simulation de MyAgri."),
		resource("res-5", core.CategoryArticle,
			"Agriculture de précision pour les petites exploitations",
			"Comment appliquer les techniques d'agriculture de précision même à petite échelle."),
		resource("res-6", core.CategoryOutil,
			"Calendrier agricole interactif",
			"Planifiez vos activités agricoles tout au long de l'année avec notre calendrier interactif."),
	})
}

// SearchHelp runs the help center search. The category narrows the FAQ
// only; resources are filtered by text alone.
func SearchHelp(text string, category core.Category) (faqs, resources []core.Record) {
	faqs = query.Search(FAQ(), query.Filter{Query: text, Category: category})
	resources = query.Search(Resources(), query.Filter{Query: text})
	return faqs, resources
}

func faq(id string, c core.Category, question, answer string) core.Record {
	return core.Record{ID: id, Kind: core.KindFAQ, Category: c, Title: question, Body: answer}
}

func resource(id string, c core.Category, title, description string) core.Record {
	return core.Record{ID: id, Kind: core.KindResource, Category: c, Title: title, Body: description, URL: "#"}
}

func clone(records []core.Record) []core.Record {
	for i := range records {
		records[i] = records[i].Clone()
	}
	return records
}
