package classifier

import "github.com/healthwatch/riskengine/internal/domain"

// DefaultTrainingExamples is the built-in seed corpus used when the
// training store has no labeled examples yet. Short synthetic outbreak
// reports spanning all three risk levels.
func DefaultTrainingExamples() []domain.TrainingExample {
	return []domain.TrainingExample{
		// High risk
		{Content: "Cholera outbreak kills dozens as infections spread across the region", Label: domain.RiskHigh},
		{Content: "Ebola epidemic declared a public health emergency after rapid spread", Label: domain.RiskHigh},
		{Content: "Hospitals overwhelmed as deadly influenza strain sweeps through the capital", Label: domain.RiskHigh},
		{Content: "Authorities impose quarantine after hemorrhagic fever deaths surge", Label: domain.RiskHigh},
		{Content: "Measles epidemic spreads to neighboring provinces with hundreds infected", Label: domain.RiskHigh},
		{Content: "Death toll rises sharply in meningitis outbreak across rural districts", Label: domain.RiskHigh},
		{Content: "Pandemic alert issued as novel virus spreads between countries", Label: domain.RiskHigh},
		{Content: "Emergency declared after contaminated water sickens thousands", Label: domain.RiskHigh},
		{Content: "Rapidly spreading dengue epidemic overwhelms regional clinics", Label: domain.RiskHigh},
		{Content: "Mass casualties feared as plague cases multiply in crowded camps", Label: domain.RiskHigh},
		{Content: "Uncontrolled spread of avian influenza prompts nationwide emergency", Label: domain.RiskHigh},
		{Content: "Severe respiratory virus kills patients in intensive care units", Label: domain.RiskHigh},

		// Moderate risk
		{Content: "Health officials investigate cluster of unexplained pneumonia cases", Label: domain.RiskModerate},
		{Content: "Rising number of typhoid cases reported in the eastern district", Label: domain.RiskModerate},
		{Content: "New respiratory illness detected with several patients hospitalized", Label: domain.RiskModerate},
		{Content: "Authorities issue advisory after increase in waterborne infections", Label: domain.RiskModerate},
		{Content: "Hospital admissions climb as seasonal influenza arrives early", Label: domain.RiskModerate},
		{Content: "Investigators monitor growing cluster of hepatitis infections", Label: domain.RiskModerate},
		{Content: "Surveillance stepped up after new cases confirmed near the border", Label: domain.RiskModerate},
		{Content: "Health ministry warns of elevated risk from mosquito borne disease", Label: domain.RiskModerate},
		{Content: "Several schools report increased absences due to stomach illness", Label: domain.RiskModerate},
		{Content: "Laboratory confirms more infections as testing expands in the area", Label: domain.RiskModerate},
		{Content: "Doctors report an uptick in respiratory complaints this week", Label: domain.RiskModerate},
		{Content: "Officials track rising infections following a regional festival", Label: domain.RiskModerate},

		// Low risk
		{Content: "Isolated case of malaria treated with patient in stable condition", Label: domain.RiskLow},
		{Content: "Routine screening finds no new infections in the district", Label: domain.RiskLow},
		{Content: "Mild seasonal colds reported with all patients recovering at home", Label: domain.RiskLow},
		{Content: "Health officials confirm earlier outbreak is now fully contained", Label: domain.RiskLow},
		{Content: "Vaccination campaign concludes with strong coverage and no incidents", Label: domain.RiskLow},
		{Content: "Single imported case detected and contained at the airport clinic", Label: domain.RiskLow},
		{Content: "Water quality tests return to normal after precautionary advisory", Label: domain.RiskLow},
		{Content: "Clinic reports quiet week with only routine consultations", Label: domain.RiskLow},
		{Content: "Last remaining patients recovered and surveillance stands down", Label: domain.RiskLow},
		{Content: "Food safety inspection finds conditions satisfactory at local markets", Label: domain.RiskLow},
		{Content: "Low risk assessment issued after laboratory rules out novel strain", Label: domain.RiskLow},
		{Content: "Community health volunteers complete training without incident", Label: domain.RiskLow},
	}
}
