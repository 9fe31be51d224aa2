package generator

import "github.com/ashmarin/covermatch/internal/analyzer"

// Template pools per experience tier. Placeholders use {name} syntax and are
// substituted by Generate; every placeholder here must appear in the
// replacement list built there.
var tierTemplates = map[analyzer.Tier][]string{
	analyzer.TierFresher: {
		`Dear {hiring_manager},

{opening_phrase} {position} position at {company}. As a recent graduate with a strong foundation in {key_skills}, I am eager to bring my fresh perspective and enthusiasm to your team.

During my studies I built practical experience with {key_skills} through coursework and personal projects. Applying theory to real problems has sharpened my analytical thinking and taught me to value collaboration and attention to detail.

I am particularly drawn to {company} because of your reputation for {company_values}. I am a quick learner and I adapt readily to new tools and practices, and I believe a newcomer's perspective can bring useful ideas to an established team.

I would welcome the opportunity to discuss how my education and energy can benefit {company}. Thank you for considering my application.

{closing_phrase}

{candidate_name}`,
		`Dear {hiring_manager},

{opening_phrase} {position} role at {company}. As a motivated recent graduate trained in {key_skills}, I am excited to begin my professional journey with an organization like yours.

My academic work gave me a solid grounding in {key_skills}, complemented by hands-on project and internship experience. Working on real deliverables taught me the importance of teamwork and of meeting deadlines without cutting corners.

What attracts me to {company} is your commitment to {company_values}. I have followed your work with interest and believe my eagerness to learn would make me a valuable addition to the team.

I would appreciate the chance to discuss how I can add value at {company}.

{closing_phrase}

{candidate_name}`,
	},
	analyzer.TierMid: {
		`Dear {hiring_manager},

{opening_phrase} {position} position at {company}. With {years_experience} of experience in {key_skills}, I have developed the expertise and professional maturity needed to contribute meaningfully from day one.

My career so far has focused on building depth in {key_skills}. Across several roles and projects I have delivered work that exceeded expectations, and I have learned to balance technical quality against schedule and business needs.

I have long admired {company}'s commitment to {company_values}. Your culture of continuous learning matches how I want to grow, and I am confident my mix of technical skill and practical judgment would serve your team well.

Thank you for your consideration.

{closing_phrase}

{candidate_name}`,
		`Dear {hiring_manager},

{opening_phrase} {position} role at {company}. As a professional with {years_experience} of experience in {key_skills}, I am ready to make an immediate contribution to your organization.

My professional path has been one of steady growth in {key_skills}. I have led small projects, collaborated across teams, and shipped solutions that delivered real value to users and stakeholders alike.

{company}'s reputation for {company_values} makes you an ideal employer for professionals seeking both impact and growth. I would be glad to bring my experience to that environment.

I am enthusiastic about the opportunity to contribute to {company} and would appreciate the chance to discuss the role further.

{closing_phrase}

{candidate_name}`,
	},
	analyzer.TierExperienced: {
		`Dear {hiring_manager},

{opening_phrase} {position} position at {company}. With {years_experience} of professional experience in {key_skills}, I am confident my background aligns closely with your requirements.

Throughout my career I have delivered measurable results in {key_skills}, led cross-functional teams, and mentored colleagues while keeping projects on schedule. I take pride in combining technical excellence with strategic thinking.

I have followed {company}'s work for some time and am impressed by your commitment to {company_values}. I am excited about the possibility of contributing to your continued growth.

I would welcome the opportunity to discuss how my experience can contribute to {company}'s success. Thank you for considering my application.

{closing_phrase}

{candidate_name}`,
		`Dear {hiring_manager},

{opening_phrase} {position} opportunity at {company}. As a seasoned professional with {years_experience} of experience specializing in {key_skills}, I am eager to bring that expertise to your organization.

Over the course of my career I have managed complex projects, guided junior colleagues, and contributed to initiatives with significant business value, all grounded in deep practical knowledge of {key_skills}.

{company}'s reputation for {company_values} is well known, and I believe my professional philosophy aligns closely with your objectives.

I am eager to discuss how my background can benefit {company}. Thank you for your time and consideration.

{closing_phrase}

{candidate_name}`,
	},
}

var openingPhrases = []string{
	"I am writing to express my strong interest in the",
	"I am excited to apply for the",
	"I would like to express my enthusiasm for the",
	"I am pleased to submit my application for the",
}

var closingPhrases = []string{
	"I look forward to discussing how my skills and experience can benefit your team.",
	"I would welcome the opportunity to discuss my qualifications further.",
	"I appreciate your time and consideration of my application.",
	"Thank you for reviewing my application.",
}
