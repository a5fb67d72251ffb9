package driver

const (
	SaveCandidateQuery = `
		MERGE (c:Candidate {id: $id})
		SET c.name = $name,
			c.skills = $skills,
			c.domains = $domains,
			c.experience_years = $experience_years,
			c.summary = $summary,
			c.embedding = $embedding,
			c.created_at = $created_at
		RETURN c.id AS id
	`

	SaveTeamQuery = `
		MERGE (t:Team {id: $id})
		SET t.name = $name,
			t.needs = $needs,
			t.expertise = $expertise,
			t.stack = $stack,
			t.embedding = $embedding,
			t.created_at = $created_at
		RETURN t.id AS id
	`

	SavePositionQuery = `
		MERGE (p:Position {id: $id})
		SET p.title = $title,
			p.required_skills = $required_skills,
			p.nice_to_have = $nice_to_have,
			p.must_have = $must_have,
			p.domain = $domain,
			p.level = $level,
			p.embedding = $embedding,
			p.created_at = $created_at
		RETURN p.id AS id
	`

	SaveInterviewerQuery = `
		MERGE (i:Interviewer {id: $id})
		SET i.name = $name,
			i.team_id = $team_id,
			i.expertise = $expertise,
			i.domains = $domains,
			i.seniority = $seniority,
			i.embedding = $embedding,
			i.created_at = $created_at
		WITH i
		MATCH (t:Team {id: $team_id})
		MERGE (i)-[:MEMBER_OF]->(t)
		RETURN i.id AS id
	`

	GetCandidateQuery = `
		MATCH (c:Candidate {id: $id})
		RETURN c.id AS id, c.name AS name, c.skills AS skills, c.domains AS domains,
			c.experience_years AS experience_years, c.summary AS summary, c.embedding AS embedding
	`

	GetAllCandidatesQuery = `
		MATCH (c:Candidate)
		RETURN c.id AS id, c.name AS name, c.skills AS skills, c.domains AS domains,
			c.experience_years AS experience_years, c.summary AS summary, c.embedding AS embedding
	`

	GetTeamQuery = `
		MATCH (t:Team {id: $id})
		RETURN t.id AS id, t.name AS name, t.needs AS needs, t.expertise AS expertise,
			t.stack AS stack, t.embedding AS embedding
	`

	GetAllTeamsQuery = `
		MATCH (t:Team)
		RETURN t.id AS id, t.name AS name, t.needs AS needs, t.expertise AS expertise,
			t.stack AS stack, t.embedding AS embedding
	`

	GetPositionQuery = `
		MATCH (p:Position {id: $id})
		RETURN p.id AS id, p.title AS title, p.required_skills AS required_skills,
			p.nice_to_have AS nice_to_have, p.must_have AS must_have,
			p.domain AS domain, p.level AS level, p.embedding AS embedding
	`

	GetInterviewerQuery = `
		MATCH (i:Interviewer {id: $id})
		RETURN i.id AS id, i.name AS name, i.team_id AS team_id, i.expertise AS expertise,
			i.domains AS domains, i.seniority AS seniority, i.embedding AS embedding
	`

	GetTeamInterviewersQuery = `
		MATCH (i:Interviewer {team_id: $team_id})
		RETURN i.id AS id, i.name AS name, i.team_id AS team_id, i.expertise AS expertise,
			i.domains AS domains, i.seniority AS seniority, i.embedding AS embedding
	`
)
